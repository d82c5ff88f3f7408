// Package database provides SQLite database connectivity for AirGrid Core.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Schema migrations (embedded, versioned, forward-only)
//   - Connection pooling and lifecycle management
//   - STRICT mode enforcement for type safety
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Performance Characteristics:
//   - WAL mode allows concurrent reads during writes
//   - Busy timeout prevents lock contention errors
//   - Bounded connection pool keeps query paths from serialising behind inserts
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	// Run migrations
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration Strategy:
//
// Migrations are forward-only and additive. The measurement table is
// append-mostly, so a rollback would drop data; a bad migration is
// repaired by a follow-up migration instead:
//   - New columns must be NULLABLE or have DEFAULT values
//   - Never DROP or RENAME columns (until a major release)
//   - Migration files are named YYYYMMDD_HHMMSS_description.up.sql
package database
