// Package backup creates and restores snapshots of the SQLite
// database. Snapshots are taken with VACUUM INTO so they are
// consistent even while the database is open, and old snapshots are
// rotated away automatically.
package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aide-sh/aide/internal/logger"
)

// MaxBackups is the number of snapshots kept after rotation.
const MaxBackups = 14

const (
	prefix     = "aide-"
	suffix     = ".db"
	nameLayout = "20060102-150405"
)

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, and restores snapshots for one database.
type Manager struct {
	dbPath string
}

// NewManager returns a manager for the database at dbPath. Snapshots
// live in a backups/ directory next to the database file.
func NewManager(dbPath string) *Manager {
	return &Manager{dbPath: dbPath}
}

// GetBackupDir returns the snapshot directory.
func (m *Manager) GetBackupDir() string {
	return filepath.Join(filepath.Dir(m.dbPath), "backups")
}

// CreateBackup writes a new snapshot and rotates old ones. Returns the
// snapshot path.
func (m *Manager) CreateBackup() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database not found at %s: %w", m.dbPath, err)
	}

	dir := m.GetBackupDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	name := prefix + time.Now().UTC().Format(nameLayout) + suffix
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		// Two backups inside the same second; disambiguate.
		dest = filepath.Join(dir, prefix+time.Now().UTC().Format(nameLayout+".000000000")+suffix)
	}

	db, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}

	if err := m.rotate(); err != nil {
		logger.Warn("Backup rotation failed", "error", err)
	}
	return dest, nil
}

// ListBackups returns snapshots newest-first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.GetBackupDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)
		ts, err := time.Parse(nameLayout, stamp)
		if err != nil {
			ts = info.ModTime().UTC()
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.GetBackupDir(), name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// RestoreBackup replaces the live database with the given snapshot. A
// safety snapshot of the current database is taken first. The caller
// must close any open store handle before restoring.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		if _, err := m.CreateBackup(); err != nil {
			return fmt.Errorf("creating safety snapshot before restore: %w", err)
		}
	}

	if err := copyFile(backupPath, m.dbPath); err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	logger.Info("Database restored", "from", backupPath)
	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), MaxBackups):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("removing old snapshot %s: %w", b.Path, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
