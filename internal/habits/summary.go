package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aide-sh/aide/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	middlingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	streakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Italic(true)

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Summary renders habit stats as a terminal report: one block per
// catalog habit with a ten-segment completion bar and the current
// streak when there is one. Stats must be in catalog order, one entry
// per habit, as returned by the store.
func Summary(stats []models.HabitStats, days int) string {
	byID := make(map[string]models.HabitStats, len(stats))
	for _, st := range stats {
		byID[st.HabitID] = st
	}

	rule := ruleStyle.Render(strings.Repeat("=", 50))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("📊 Habit Summary - Last %d days", days)))
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n")

	for _, habit := range All() {
		st := byID[habit.ID]
		style, status := goodStyle, "✓"
		switch {
		case st.CompletionRate < 50:
			style, status = badStyle, "✗"
		case st.CompletionRate < 80:
			style, status = middlingStyle, "~"
		}

		filled := int(st.CompletionRate / 10)
		if filled > 10 {
			filled = 10
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)

		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%s %s", status, habit.Name)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("   %d/%d days | %s %.0f%%", st.Completed, st.Total, bar, st.CompletionRate))
		b.WriteString("\n")
		if st.CurrentStreak > 0 {
			b.WriteString(streakStyle.Render(fmt.Sprintf("   🔥 %d day streak", st.CurrentStreak)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(rule)
	return b.String()
}
