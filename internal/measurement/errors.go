package measurement

import "errors"

// Validation errors: the caller's input is bad. Never retried, always
// surfaced verbatim so transports can render them to the client.
var (
	// ErrMissingPayload is returned when the ingestion payload is absent.
	ErrMissingPayload = errors.New("measurement: payload is required")

	// ErrMissingType is returned when the payload has no "tipo" field.
	ErrMissingType = errors.New("measurement: reading type is required")

	// ErrMissingValue is returned when the payload has no "valor" field.
	ErrMissingValue = errors.New("measurement: reading value is required")

	// ErrInvalidType is returned when the reading type is not in the
	// accepted set.
	ErrInvalidType = errors.New(`measurement: invalid reading type (must be "temperatura" or "gas")`)

	// ErrNonNumericValue is returned when the value does not coerce to
	// a finite number.
	ErrNonNumericValue = errors.New("measurement: reading value must be numeric")

	// ErrValueOutOfRange is returned when the value falls outside the
	// accepted range.
	ErrValueOutOfRange = errors.New("measurement: reading value out of range (-1000 to 10000)")

	// ErrInvalidLimit is returned when a recent-N limit is not an
	// integer between 1 and 1000.
	ErrInvalidLimit = errors.New("measurement: limit must be an integer between 1 and 1000")
)

// Storage and lookup errors.
var (
	// ErrNoMeasurements is returned when a latest-reading lookup finds
	// an empty store.
	ErrNoMeasurements = errors.New("measurement: no measurements recorded")

	// ErrStoreUnavailable is returned when the store cannot answer a
	// health round-trip.
	ErrStoreUnavailable = errors.New("measurement: store unavailable")
)

// validationErrs is the closed set of caller-input failures.
var validationErrs = []error{
	ErrMissingPayload,
	ErrMissingType,
	ErrMissingValue,
	ErrInvalidType,
	ErrNonNumericValue,
	ErrValueOutOfRange,
	ErrInvalidLimit,
}

// IsValidationError reports whether err is a caller-input problem
// (as opposed to a storage failure). Transports use this to choose
// between 400 and 503 responses.
func IsValidationError(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
