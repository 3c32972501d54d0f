package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/aide-sh/aide/internal/habits"
	"github.com/aide-sh/aide/internal/storage"
)

type HabitLogCmd struct {
	Habit  string `arg:"" help:"Habit id (see 'aide habit list')."`
	Missed bool   `help:"Log the habit as missed instead of completed."`
	Notes  string `help:"Optional note for this entry."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if _, err := ctx.Store.LogHabit(c.Habit, !c.Missed, c.Notes, c.Date); err != nil {
		return err
	}

	status := "completed"
	if c.Missed {
		status = "missed"
	}
	day := c.Date
	if day == "" {
		day = "today"
	}
	fmt.Printf("✓ Logged %s as %s for %s\n", c.Habit, status, day)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	today := time.Now().UTC().Format("2006-01-02")

	fmt.Printf("Habits for %s:\n\n", today)
	for _, h := range habits.All() {
		log, err := ctx.Store.GetHabitForDate(h.ID, today)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Printf("  · %s: not logged\n", h.Name)
		case err != nil:
			return err
		case log.Completed:
			fmt.Printf("  ✓ %s\n", h.Name)
		default:
			fmt.Printf("  ✗ %s\n", h.Name)
		}
	}
	return nil
}

type HabitStatsCmd struct {
	Days int `help:"Trailing window in days." default:"7"`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	stats, err := ctx.Store.GetAllHabitsStats(c.Days)
	if err != nil {
		return err
	}
	fmt.Println(habits.Summary(stats, c.Days))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	for _, h := range habits.All() {
		fmt.Printf("%-18s %s\n", h.ID, h.Description)
	}
	return nil
}
