package measurement

import (
	"context"
	"time"
)

// Repository persists measurements and answers filtered queries.
//
// Implementations execute parameterised statements only; all business
// rules (validation, filter leniency, unit shaping) live above in the
// Service. Every method honours context cancellation.
type Repository interface {
	// Insert persists a validated measurement and returns it with the
	// store-assigned ID.
	Insert(ctx context.Context, m Measurement) (Measurement, error)

	// Select returns measurements matching the filter, newest first.
	Select(ctx context.Context, fq FilterQuery) ([]Measurement, error)

	// Latest returns the single newest measurement, or ErrNoMeasurements
	// when the store is empty.
	Latest(ctx context.Context) (Measurement, error)

	// Stats computes aggregates over the whole store.
	Stats(ctx context.Context) (Stats, error)

	// DeleteOlderThan removes measurements with timestamps before the
	// cutoff and returns the number of rows deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping verifies the store answers a round-trip.
	Ping(ctx context.Context) error
}
