package measurement

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value range accepted from sensors. Wide enough for extreme
// temperatures and raw gas sensor levels alike.
const (
	minValue = -1000.0
	maxValue = 10000.0
)

// Validate checks a raw device payload and returns the normalised
// measurement ready for persistence.
//
// Rules, in order:
//  1. The payload must be present.
//  2. "tipo" must be present and, after lower-casing and trimming,
//     be exactly "temperatura" or "gas".
//  3. "valor" must be present and coerce to a finite number within
//     [-1000, 10000] inclusive.
//  4. The timestamp defaults to the current instant when absent;
//     parseable timestamps are normalised to UTC RFC3339.
//
// The result attributes the reading to DefaultDeviceID. Validate has
// no side effects and is idempotent on its own output.
//
// Parameters:
//   - raw: Untyped payload as decoded from the transport
//
// Returns:
//   - Measurement: Normalised reading (ID unset until persisted)
//   - error: One of the validation sentinel errors
func Validate(raw *RawReading) (Measurement, error) {
	if raw == nil {
		return Measurement{}, ErrMissingPayload
	}

	if strings.TrimSpace(raw.Tipo) == "" {
		return Measurement{}, ErrMissingType
	}
	if raw.Valor == nil {
		return Measurement{}, ErrMissingValue
	}

	readingType := strings.ToLower(strings.TrimSpace(raw.Tipo))
	if readingType != TypeTemperature && readingType != TypeGas {
		return Measurement{}, fmt.Errorf("%w: got %q", ErrInvalidType, raw.Tipo)
	}

	value, err := coerceValue(raw.Valor)
	if err != nil {
		return Measurement{}, err
	}
	if value < minValue || value > maxValue {
		return Measurement{}, fmt.Errorf("%w: got %v", ErrValueOutOfRange, value)
	}

	return Measurement{
		DeviceID:  DefaultDeviceID,
		Type:      readingType,
		Value:     value,
		Timestamp: normaliseTimestamp(raw.Timestamp),
	}, nil
}

// coerceValue converts the untyped "valor" field to a finite float64.
// Devices send JSON numbers or numeric strings interchangeably.
func coerceValue(v any) (float64, error) {
	var value float64

	switch n := v.(type) {
	case float64:
		value = n
	case float32:
		value = float64(n)
	case int:
		value = float64(n)
	case int64:
		value = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: got %q", ErrNonNumericValue, n.String())
		}
		value = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: got %q", ErrNonNumericValue, n)
		}
		value = parsed
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNonNumericValue, v)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: value is not finite", ErrNonNumericValue)
	}

	return value, nil
}

// normaliseTimestamp returns the caller's timestamp normalised to UTC
// RFC3339 when parseable, the current instant when absent, and the
// caller's string verbatim otherwise (the fleet predates strict
// timestamp validation).
func normaliseTimestamp(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}
	if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
		return parsed.UTC().Format(time.RFC3339)
	}
	return ts
}
