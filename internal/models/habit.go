package models

import "time"

// HabitLog is one completion record for one habit on one calendar
// date. Append-only; duplicates for the same (habit, date) pair are
// permitted.
type HabitLog struct {
	ID         string    `json:"id"`
	HabitID    string    `json:"habit_id"`
	LoggedDate string    `json:"logged_date"` // YYYY-MM-DD
	Completed  bool      `json:"completed"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// HabitStats summarizes a habit over a trailing window of days.
// CompletionRate uses the window size as denominator, so unlogged days
// count against the rate. CurrentStreak counts consecutive completed
// rows starting from the most recent row; days with no row are skipped
// by the scan.
type HabitStats struct {
	HabitID        string  `json:"habit_id"`
	DaysTracked    int     `json:"days_tracked"`
	Completed      int     `json:"completed"`
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
}
