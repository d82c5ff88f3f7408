package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// MigrationsFS should be set by the main package to embed migration files.
// This allows the migrations to be compiled into the binary.
//
// Usage in main.go or a migrations package:
//
//	//go:embed *.sql
//	var migrationsFS embed.FS
//
//	func init() {
//	    database.MigrationsFS = migrationsFS
//	}
var MigrationsFS embed.FS

// MigrationsDir is the directory within MigrationsFS containing migration files.
// Can be set to "." if files are at the root of the embedded filesystem.
var MigrationsDir = "migrations"

// Migration is one forward schema step loaded from the embedded filesystem.
//
// AirGrid migrates forward only. A bad migration on a live store is
// repaired by a follow-up migration, never by rolling back: the
// measurement table is append-mostly and a rollback would drop data.
type Migration struct {
	// Version orders migrations and keys the schema_migrations table.
	// Format: YYYYMMDD_HHMMSS, taken from the filename.
	Version string

	// Name is the human-readable part of the filename.
	Name string

	// SQL is the statement batch to apply.
	SQL string
}

// Migrate applies all pending migrations in version order (oldest first).
//
// Each migration runs in its own transaction. If migration N fails,
// migrations 1..N-1 stay committed, N is rolled back, and N+1 onwards
// are not attempted; re-running Migrate() after fixing the issue
// continues from N.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: If any migration fails (that migration is rolled back)
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.ensureVersionTable(ctx); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("reading applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("applying migration %s (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// SchemaVersion returns the newest applied migration version, or the
// empty string when no migration has run yet. Reported on the metrics
// endpoint so operators can confirm which schema a deployment runs.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - string: Latest applied version, "" if none
//   - error: If the version table cannot be read
func (db *DB) SchemaVersion(ctx context.Context) (string, error) {
	if err := db.ensureVersionTable(ctx); err != nil {
		return "", fmt.Errorf("creating migrations table: %w", err)
	}

	var version sql.NullString
	err := db.QueryRowContext(ctx,
		"SELECT MAX(version) FROM schema_migrations",
	).Scan(&version)
	if err != nil {
		return "", fmt.Errorf("querying schema version: %w", err)
	}
	if !version.Valid {
		return "", nil
	}
	return version.String, nil
}

// ensureVersionTable creates the schema_migrations table if it doesn't exist.
func (db *DB) ensureVersionTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`)
	return err
}

// appliedVersions returns the set of migration versions already applied.
func (db *DB) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := db.DB.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		applied[version] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating migrations: %w", err)
	}
	return applied, nil
}

// applyMigration applies a single migration within a transaction.
func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		m.Version,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	return nil
}

// loadMigrations reads *.up.sql files from the embedded filesystem,
// sorted by version (oldest first). Other files are ignored.
func loadMigrations() ([]Migration, error) {
	var empty embed.FS
	if MigrationsFS == empty {
		return nil, nil // No embedded migrations
	}

	entries, err := fs.ReadDir(MigrationsFS, MigrationsDir)
	if err != nil {
		// Directory might not exist if no migrations
		return nil, nil
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, ok := parseMigrationFilename(entry.Name())
		if !ok {
			continue
		}

		contents, err := fs.ReadFile(MigrationsFS, path.Join(MigrationsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			SQL:     string(contents),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigrationFilename splits a migration filename into version and name.
// Example: "20260901_000000_create_measurements.up.sql" ->
// ("20260901_000000", "create_measurements", true).
func parseMigrationFilename(filename string) (version, name string, ok bool) {
	base, found := strings.CutSuffix(filename, ".up.sql")
	if !found {
		return "", "", false
	}

	// Version is the leading YYYYMMDD_HHMMSS; the rest is the name.
	const versionParts = 2
	parts := strings.SplitN(base, "_", versionParts+1)
	if len(parts) < versionParts+1 {
		return "", "", false
	}

	return parts[0] + "_" + parts[1], parts[2], true
}
