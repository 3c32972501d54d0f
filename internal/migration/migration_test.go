package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"001_init.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE widgets (id TEXT PRIMARY KEY);"),
		},
		"002_add_name.sql": &fstest.MapFile{
			Data: []byte("ALTER TABLE widgets ADD COLUMN name TEXT;"),
		},
	}
}

func TestApplyRecordsVersion(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS())

	applied, err := runner.Apply()
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// The schema from both migrations must be live.
	if _, err := db.Exec("INSERT INTO widgets (id, name) VALUES ('a', 'b')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS())

	if _, err := runner.Apply(); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	applied, err := runner.Apply()
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied %d migrations, want 0", applied)
	}
}

func TestApplyResumesFromRecordedVersion(t *testing.T) {
	db := openTestDB(t)

	first := fstest.MapFS{"001_init.sql": testFS()["001_init.sql"]}
	if _, err := NewRunner(db, first).Apply(); err != nil {
		t.Fatalf("initial Apply: %v", err)
	}

	applied, err := NewRunner(db, testFS()).Apply()
	if err != nil {
		t.Fatalf("upgrade Apply: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want only the new migration", applied)
	}
}

func TestApplyRejectsNewerDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS())
	if _, err := runner.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Downgrade the binary: only migration 001 is shipped.
	older := NewRunner(db, fstest.MapFS{"001_init.sql": testFS()["001_init.sql"]})
	if _, err := older.Apply(); err == nil {
		t.Error("expected error when database is newer than shipped migrations")
	}
	if err := older.Validate(); err == nil {
		t.Error("Validate should reject a newer database")
	}
}

func TestReadRejectsMalformedFilenames(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"init.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	})

	if _, err := runner.Apply(); err == nil {
		t.Error("expected error for filename without version prefix")
	}
}

func TestLatestVersion(t *testing.T) {
	db := openTestDB(t)

	latest, err := NewRunner(db, testFS()).LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if latest != 2 {
		t.Errorf("latest = %d, want 2", latest)
	}

	empty, err := NewRunner(db, fstest.MapFS{}).LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion on empty fs: %v", err)
	}
	if empty != 0 {
		t.Errorf("latest = %d, want 0", empty)
	}
}
