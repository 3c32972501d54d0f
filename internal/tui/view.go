package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/aide-sh/aide/internal/errors"
	"github.com/aide-sh/aide/internal/models"
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return vp
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting chat..."
	}

	status := statusStyle.Render(m.statusLine())
	if m.waiting {
		status = m.spinner.View() + " " + statusStyle.Render("thinking...")
	}
	if m.err != nil {
		status = errorStyle.Render(errors.Format(m.err))
	}

	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), status, m.textarea.View())
}

func (m Model) statusLine() string {
	title := m.conv.Title
	if title == "" {
		title = string(m.conv.Type)
	}
	info := m.provider.ModelInfo()
	return fmt.Sprintf("%s · %s/%s · %d messages",
		title, info["provider"], info["model"], len(m.conv.Messages))
}

func (m Model) renderTranscript() string {
	if len(m.conv.Messages) == 0 {
		return mutedStyle.Render("No messages yet. Say something!")
	}

	var b strings.Builder
	for i, msg := range m.conv.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.Role == models.RoleHuman {
			b.WriteString(userStyle.Render("You"))
		} else {
			b.WriteString(assistantStyle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(msg.Content)
	}
	return b.String()
}
