package measurement

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/airgrid-core/internal/infrastructure/logging"
)

// ReadingMirror receives accepted readings for time-series dashboards.
// Writes are fire-and-forget; a mirror must never block or fail ingest.
type ReadingMirror interface {
	WriteReading(deviceID int64, readingType string, value float64, timestamp time.Time)
}

// Service is the stateless facade over validation, filtering and
// persistence. Both transports (HTTP and MQTT) call through it so
// every reading obeys the same rules regardless of how it arrived.
type Service struct {
	repo   Repository
	mirror ReadingMirror
	logger *logging.Logger
}

// NewService creates the measurement service.
//
// Parameters:
//   - repo: Measurement store
//   - mirror: Optional time-series mirror (nil disables mirroring)
//   - logger: Structured logger
//
// Returns:
//   - *Service: Service ready for use
func NewService(repo Repository, mirror ReadingMirror, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:   repo,
		mirror: mirror,
		logger: logger.With("component", "measurement"),
	}
}

// Ingest validates a raw device payload and persists it.
//
// Validation failures propagate unchanged for the transport to map to
// a client error; storage failures propagate as storage errors. On
// success the accepted reading is mirrored to the time-series store
// when one is configured (non-blocking, never affects the result).
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - raw: Untyped payload as decoded from the transport
//
// Returns:
//   - Measurement: Persisted reading with store id and unit label
//   - error: Validation or storage error
func (s *Service) Ingest(ctx context.Context, raw *RawReading) (Measurement, error) {
	m, err := Validate(raw)
	if err != nil {
		return Measurement{}, err
	}

	stored, err := s.repo.Insert(ctx, m)
	if err != nil {
		return Measurement{}, err
	}

	if s.mirror != nil {
		ts, tsErr := time.Parse(time.RFC3339, stored.Timestamp)
		if tsErr != nil {
			ts = time.Now().UTC()
		}
		s.mirror.WriteReading(stored.DeviceID, stored.Type, stored.Value, ts)
	}

	s.logger.Debug("measurement ingested",
		"id", stored.ID,
		"type", stored.Type,
		"value", stored.Value,
	)

	return shape(stored), nil
}

// Query returns measurements matching the criteria, newest first.
//
// Filter leniency applies: unknown types and out-of-range limits are
// ignored rather than rejected (see BuildFilter).
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - c: Optional filter criteria (zero values mean no constraint)
//
// Returns:
//   - []Measurement: Shaped readings ordered by timestamp DESC
//   - error: nil on success, otherwise a storage error
func (s *Service) Query(ctx context.Context, c Criteria) ([]Measurement, error) {
	measurements, err := s.repo.Select(ctx, BuildFilter(c))
	if err != nil {
		return nil, err
	}
	return shapeAll(measurements), nil
}

// Recent returns the newest n measurements.
//
// Unlike filtered queries, the recent-N path is strict about its one
// parameter: n outside [1, 1000] is rejected with ErrInvalidLimit.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - n: Number of readings to return
//
// Returns:
//   - []Measurement: Up to n newest readings
//   - error: ErrInvalidLimit or a storage error
func (s *Service) Recent(ctx context.Context, n int) ([]Measurement, error) {
	if n < 1 || n > MaxQueryLimit {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}
	return s.Query(ctx, Criteria{Limit: n})
}

// Latest returns the single newest measurement.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - Measurement: The newest stored reading, shaped
//   - error: ErrNoMeasurements when the store is empty, otherwise a
//     storage error
func (s *Service) Latest(ctx context.Context) (Measurement, error) {
	m, err := s.repo.Latest(ctx)
	if err != nil {
		return Measurement{}, err
	}
	return shape(m), nil
}

// Stats returns aggregate statistics over the whole store.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - Stats: Totals, per-type averages (2dp) and newest timestamp
//   - error: nil on success, otherwise a storage error
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// Purge deletes measurements older than ageDays.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - ageDays: Retention age in days (defaults to 30 when <= 0)
//
// Returns:
//   - PurgeResult: Rows removed and the cutoff applied
//   - error: nil on success, otherwise a storage error
func (s *Service) Purge(ctx context.Context, ageDays int) (PurgeResult, error) {
	if ageDays <= 0 {
		ageDays = DefaultRetentionDays
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -ageDays)
	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return PurgeResult{}, err
	}

	s.logger.Info("measurements purged",
		"removed", removed,
		"cutoff", cutoff.Format(time.RFC3339),
	)

	return PurgeResult{Removed: removed, Cutoff: cutoff}, nil
}

// HealthCheck verifies the store answers a round-trip.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - error: ErrStoreUnavailable (wrapped cause) when the store is down
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// shape attaches the display unit to a stored measurement.
func shape(m Measurement) Measurement {
	m.Unit = UnitFor(m.Type)
	return m
}

func shapeAll(measurements []Measurement) []Measurement {
	for i := range measurements {
		measurements[i] = shape(measurements[i])
	}
	return measurements
}
