// Package storage persists conversations and habit logs in a single
// local SQLite file. The schema is auto-created on first use through
// embedded migrations. Every operation runs against one short-lived
// statement on the shared handle; there is no pooling, no long-lived
// transaction, and no retry logic; failures surface to the caller.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aide-sh/aide/internal/migration"
	"github.com/aide-sh/aide/migrations"
)

var (
	// ErrNotFound is returned when a query by id or date matches
	// nothing. It is an expected outcome, not a fault.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownMessageType is returned when a persisted message
	// carries a type tag other than HumanMessage or AIMessage.
	ErrUnknownMessageType = errors.New("unknown message type tag")
)

// Timestamps are ISO-8601 text generated from the UTC wall clock,
// without a timezone suffix. The fixed microsecond width keeps
// lexicographic and chronological order identical.
const (
	timeLayout = "2006-01-02T15:04:05.000000"
	dateLayout = "2006-01-02"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// Store is the conversation and habit-log store.
type Store struct {
	path string
	db   *sql.DB
}

// New returns an unopened store bound to the given database path.
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates the parent directory if needed, opens the database,
// and applies pending migrations. Idempotent.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Ping verifies the database answers queries.
func (s *Store) Ping() error {
	if s.db == nil {
		return errors.New("store is not open")
	}
	var one int
	return s.db.QueryRow("SELECT 1").Scan(&one)
}

// SchemaStatus reports the schema version recorded in the database and
// the latest version this build ships.
func (s *Store) SchemaStatus() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, errors.New("store is not open")
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return 0, 0, fmt.Errorf("accessing sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS)
	if current, err = runner.CurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.LatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) migrate() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("accessing sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS)
	if _, err := runner.Apply(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
