package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aide-sh/aide/internal/habits"
	"github.com/aide-sh/aide/internal/models"
)

// LogHabit records a completion entry for a habit. date is YYYY-MM-DD
// and defaults to today (UTC) when empty. The table is append-only:
// logging the same habit twice for the same date inserts a second row,
// and date-scoped reads resolve to the newest row by created_at.
func (s *Store) LogHabit(habitID string, completed bool, notes, date string) (string, error) {
	if _, err := habits.Get(habitID); err != nil {
		return "", err
	}
	if date == "" {
		date = nowUTC().Format(dateLayout)
	} else if _, err := parseDate(date); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}

	id := uuid.New().String()
	_, err := s.db.Exec(`
		INSERT INTO habit_logs (id, habit_id, logged_date, completed, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, habitID, date, completed, nullable(notes), formatTime(nowUTC()))
	if err != nil {
		return "", fmt.Errorf("logging habit: %w", err)
	}
	return id, nil
}

// GetHabitForDate returns the log entry for one habit on one date, or
// ErrNotFound. With duplicate entries the newest by created_at wins.
func (s *Store) GetHabitForDate(habitID, date string) (models.HabitLog, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, logged_date, completed, notes, created_at
		FROM habit_logs WHERE habit_id = ? AND logged_date = ?
		ORDER BY created_at DESC LIMIT 1`, habitID, date)
	log, err := scanHabitLog(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HabitLog{}, ErrNotFound
	}
	return log, err
}

// GetHabitsForDate returns all log entries for a date, newest first.
func (s *Store) GetHabitsForDate(date string) ([]models.HabitLog, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, logged_date, completed, notes, created_at
		FROM habit_logs WHERE logged_date = ?
		ORDER BY created_at DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("querying habit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		log, err := scanHabitLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// GetHabitStats computes stats for one habit over the trailing window
// of days ending today. The completion rate divides by the window
// size, so days with no log entry lower the rate. The streak walks
// rows most-recent-first and counts completed rows until the first
// incomplete one; calendar gaps between rows do not break it.
func (s *Store) GetHabitStats(habitID string, days int) (models.HabitStats, error) {
	if days <= 0 {
		days = 30
	}
	since := nowUTC().AddDate(0, 0, -(days - 1)).Format(dateLayout)

	rows, err := s.db.Query(`
		SELECT logged_date, completed
		FROM habit_logs WHERE habit_id = ? AND logged_date >= ?
		ORDER BY logged_date DESC, created_at DESC`, habitID, since)
	if err != nil {
		return models.HabitStats{}, fmt.Errorf("querying habit stats: %w", err)
	}
	defer rows.Close()

	stats := models.HabitStats{HabitID: habitID, DaysTracked: days}
	streakAlive := true
	for rows.Next() {
		var date string
		var completed bool
		if err := rows.Scan(&date, &completed); err != nil {
			return models.HabitStats{}, fmt.Errorf("scanning habit stats: %w", err)
		}
		stats.Total++
		if completed {
			stats.Completed++
			if streakAlive {
				stats.CurrentStreak++
			}
		} else {
			streakAlive = false
		}
	}
	if err := rows.Err(); err != nil {
		return models.HabitStats{}, err
	}

	stats.CompletionRate = float64(stats.Completed) / float64(days) * 100
	return stats, nil
}

// GetAllHabitsStats computes stats for every habit in the catalog,
// in catalog order.
func (s *Store) GetAllHabitsStats(days int) ([]models.HabitStats, error) {
	all := habits.All()
	out := make([]models.HabitStats, 0, len(all))
	for _, h := range all {
		stats, err := s.GetHabitStats(h.ID, days)
		if err != nil {
			return nil, err
		}
		out = append(out, stats)
	}
	return out, nil
}

func scanHabitLog(scan func(...any) error) (models.HabitLog, error) {
	var log models.HabitLog
	var notes sql.NullString
	var createdAt string

	if err := scan(&log.ID, &log.HabitID, &log.LoggedDate, &log.Completed, &notes, &createdAt); err != nil {
		return models.HabitLog{}, err
	}
	log.Notes = notes.String

	var err error
	if log.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.HabitLog{}, fmt.Errorf("parsing created_at for %s: %w", log.ID, err)
	}
	return log, nil
}
