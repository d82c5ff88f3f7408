package measurement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"
)

// SQLiteRepository implements Repository using SQLite.
//
// All statements are parameterised; filter fragments arrive pre-built
// from BuildFilter and carry their values in FilterQuery.Args.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite measurement repository.
//
// Parameters:
//   - db: Open SQLite connection used for queries
//
// Returns:
//   - *SQLiteRepository: Repository instance ready for use
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert persists a validated measurement.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - m: Validated measurement (ID ignored)
//
// Returns:
//   - Measurement: The stored measurement with its assigned ID
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteRepository) Insert(ctx context.Context, m Measurement) (Measurement, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO measurements (device_id, type, value, timestamp) VALUES (?, ?, ?, ?)",
		m.DeviceID,
		m.Type,
		m.Value,
		m.Timestamp,
	)
	if err != nil {
		return Measurement{}, fmt.Errorf("inserting measurement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Measurement{}, fmt.Errorf("reading insert id: %w", err)
	}

	m.ID = id
	return m, nil
}

// Select returns measurements matching the filter, newest first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - fq: Pre-built filter fragment from BuildFilter
//
// Returns:
//   - []Measurement: Matching measurements ordered by timestamp DESC
//   - error: nil on success, otherwise the underlying query error
func (r *SQLiteRepository) Select(ctx context.Context, fq FilterQuery) ([]Measurement, error) {
	query := "SELECT id, device_id, type, value, timestamp FROM measurements"
	if fq.Where != "" {
		query += " WHERE " + fq.Where
	}
	query += " ORDER BY timestamp DESC"
	if fq.Limit != "" {
		query += " " + fq.Limit
	}

	rows, err := r.db.QueryContext(ctx, query, fq.Args...)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer rows.Close()

	measurements := make([]Measurement, 0)
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(&m.ID, &m.DeviceID, &m.Type, &m.Value, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning measurement: %w", err)
		}
		measurements = append(measurements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measurements: %w", err)
	}

	return measurements, nil
}

// Latest returns the single newest measurement.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - Measurement: The newest stored measurement
//   - error: ErrNoMeasurements when the store is empty, otherwise the
//     underlying query error
func (r *SQLiteRepository) Latest(ctx context.Context) (Measurement, error) {
	var m Measurement
	err := r.db.QueryRowContext(ctx,
		"SELECT id, device_id, type, value, timestamp FROM measurements ORDER BY timestamp DESC LIMIT 1",
	).Scan(&m.ID, &m.DeviceID, &m.Type, &m.Value, &m.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return Measurement{}, ErrNoMeasurements
	}
	if err != nil {
		return Measurement{}, fmt.Errorf("querying latest measurement: %w", err)
	}

	return m, nil
}

// Stats computes aggregates over the whole store.
//
// Averages are nil when no readings of that type exist, and rounded to
// two decimals otherwise. LastTimestamp is nil on an empty store.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - Stats: Aggregate view of the store
//   - error: nil on success, otherwise the underlying query error
func (r *SQLiteRepository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var avgTemp, avgGas sql.NullFloat64
	var last sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(DISTINCT device_id),
		        AVG(CASE WHEN type = ? THEN value END),
		        AVG(CASE WHEN type = ? THEN value END),
		        MAX(timestamp)
		 FROM measurements`,
		TypeTemperature,
		TypeGas,
	).Scan(&stats.Total, &stats.Devices, &avgTemp, &avgGas, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("querying stats: %w", err)
	}

	if avgTemp.Valid {
		rounded := round2(avgTemp.Float64)
		stats.AvgTemperature = &rounded
	}
	if avgGas.Valid {
		rounded := round2(avgGas.Float64)
		stats.AvgGas = &rounded
	}
	if last.Valid {
		stats.LastTimestamp = &last.String
	}

	return stats, nil
}

// DeleteOlderThan removes measurements with timestamps before the cutoff.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - cutoff: Measurements older than this instant are deleted
//
// Returns:
//   - int64: Number of rows deleted
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM measurements WHERE timestamp < ?",
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting measurements: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}

	return rowsAffected, nil
}

// Ping verifies the store answers a round-trip.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - error: ErrStoreUnavailable wrapping the cause when the store
//     does not respond
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// round2 rounds to two decimal places for display aggregates.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
