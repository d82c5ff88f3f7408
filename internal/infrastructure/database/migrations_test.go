package database

import (
	"context"
	"embed"
	"path/filepath"
	"strings"
	"testing"
)

//go:embed testdata
var testMigrationsFS embed.FS

// useTestMigrations points the migration runner at a fixture directory
// for the duration of one test and restores the globals afterwards.
func useTestMigrations(t *testing.T, dir string) {
	t.Helper()

	originalFS := MigrationsFS
	originalDir := MigrationsDir
	t.Cleanup(func() {
		MigrationsFS = originalFS
		MigrationsDir = originalDir
	})

	MigrationsFS = testMigrationsFS
	MigrationsDir = dir
}

// openMigrationTestDB opens a fresh file-backed database for migration tests.
func openMigrationTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// countAppliedMigrations returns the number of schema_migrations rows.
func countAppliedMigrations(t *testing.T, ctx context.Context, db *DB) int {
	t.Helper()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("counting applied migrations: %v", err)
	}
	return count
}

// TestMigrate verifies pending migrations apply in version order.
func TestMigrate(t *testing.T) {
	useTestMigrations(t, "testdata")
	db := openMigrationTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// The second fixture alters the table the first creates, so reaching
	// this insert proves ordering.
	if _, err := db.ExecContext(ctx,
		"INSERT INTO readings (type, value, timestamp, device_id) VALUES (?, ?, ?, ?)",
		"temperatura", 21.5, "2026-09-01T10:00:00Z", 1,
	); err != nil {
		t.Fatalf("inserting into migrated schema: %v", err)
	}

	if got := countAppliedMigrations(t, ctx, db); got != 2 {
		t.Errorf("applied migrations = %d, want 2", got)
	}
}

// TestMigrateIdempotent verifies re-running applies nothing new.
func TestMigrateIdempotent(t *testing.T) {
	useTestMigrations(t, "testdata")
	db := openMigrationTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	if got := countAppliedMigrations(t, ctx, db); got != 2 {
		t.Errorf("applied migrations = %d, want 2", got)
	}
}

// TestMigrateFailureKeepsEarlierMigrations verifies a failing migration
// is rolled back without disturbing the ones applied before it.
func TestMigrateFailureKeepsEarlierMigrations(t *testing.T) {
	useTestMigrations(t, "testdata/broken")
	db := openMigrationTestDB(t)
	ctx := context.Background()

	err := db.Migrate(ctx)
	if err == nil {
		t.Fatal("Migrate() should fail on the invalid fixture")
	}
	if !strings.Contains(err.Error(), "20260904_000000") {
		t.Errorf("error = %v, want it to name the failing version", err)
	}

	// The valid migration before the failure stays committed.
	if _, execErr := db.ExecContext(ctx,
		"INSERT INTO samples (value) VALUES (?)", 1.0,
	); execErr != nil {
		t.Errorf("schema from earlier migration missing: %v", execErr)
	}
	if got := countAppliedMigrations(t, ctx, db); got != 1 {
		t.Errorf("applied migrations = %d, want 1 (failed one not recorded)", got)
	}
}

// TestSchemaVersion verifies the reported version tracks applied migrations.
func TestSchemaVersion(t *testing.T) {
	useTestMigrations(t, "testdata")
	db := openMigrationTestDB(t)
	ctx := context.Background()

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != "" {
		t.Errorf("SchemaVersion() before migrate = %q, want empty", version)
	}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	version, err = db.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != "20260902_000000" {
		t.Errorf("SchemaVersion() = %q, want %q", version, "20260902_000000")
	}
}

// TestParseMigrationFilename verifies filename handling.
func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion string
		wantName    string
		wantOK      bool
	}{
		{"20260901_000000_create_measurements.up.sql", "20260901_000000", "create_measurements", true},
		{"20260901_000000_create.up.sql", "20260901_000000", "create", true},
		{"notes.txt", "", "", false},
		{"schema.sql", "", "", false},
		{"20260901.up.sql", "", "", false},
	}

	for _, tt := range tests {
		version, name, ok := parseMigrationFilename(tt.filename)
		if version != tt.wantVersion || name != tt.wantName || ok != tt.wantOK {
			t.Errorf("parseMigrationFilename(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.filename, version, name, ok, tt.wantVersion, tt.wantName, tt.wantOK)
		}
	}
}
