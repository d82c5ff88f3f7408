package measurement

import "time"

// Reading type values accepted from devices.
const (
	TypeTemperature = "temperatura"
	TypeGas         = "gas"
)

// DefaultDeviceID is the device attribution for all readings today.
// Kept as a first-class column so multi-device support is additive.
const DefaultDeviceID = 1

// Limit bounds for recent/filtered queries.
const (
	DefaultRecentLimit = 50
	MaxQueryLimit      = 1000
)

// DefaultRetentionDays is the purge age used when the caller passes none.
const DefaultRetentionDays = 30

// Measurement is one immutable sensor reading.
//
// Timestamp is an ISO-8601 instant string; the validator normalises
// parseable inputs to UTC RFC3339 and otherwise stores the caller's
// string verbatim.
type Measurement struct {
	// ID is the auto-incremented primary key, assigned by the store.
	ID int64 `json:"id"`

	// DeviceID attributes the reading to a device (currently always 1).
	DeviceID int64 `json:"dispositivo_id"`

	// Type is the normalised reading type: "temperatura" or "gas".
	Type string `json:"tipo"`

	// Value is the reading value, always a finite number in [-1000, 10000].
	Value float64 `json:"valor"`

	// Unit is the display unit derived from Type ("°C" or "ppm").
	// Shaped by the service layer; not persisted.
	Unit string `json:"unidad,omitempty"`

	// Timestamp is when the reading was taken (ISO-8601).
	Timestamp string `json:"timestamp"`
}

// RawReading is the untyped ingestion payload as devices send it.
//
// Valor is deliberately `any`: devices send numbers and numeric strings
// interchangeably, and the validator must distinguish "absent/null"
// from "present but not numeric".
type RawReading struct {
	Tipo      string `json:"tipo"`
	Valor     any    `json:"valor"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Criteria is the optional filter set for measurement queries.
// Zero values mean "no constraint" for every field.
type Criteria struct {
	// DeviceID filters by device attribution when > 0.
	DeviceID int64

	// Type filters by reading type. Unknown values are silently
	// ignored rather than rejected (lenient-filter policy; ingestion
	// stays strict).
	Type string

	// DateFrom/DateTo bound the timestamp range (inclusive, ISO-8601).
	DateFrom string
	DateTo   string

	// Limit caps the result set. Applied only when in [1, 1000];
	// out-of-range values are ignored, not rejected.
	Limit int
}

// Stats is the aggregate view over all stored measurements.
type Stats struct {
	// Total is the number of stored readings.
	Total int64 `json:"total_mediciones"`

	// Devices is the number of distinct reporting devices.
	Devices int64 `json:"total_dispositivos"`

	// AvgTemperature is the mean temperature value, rounded to two
	// decimals; nil when no temperature readings exist.
	AvgTemperature *float64 `json:"promedio_temperatura"`

	// AvgGas is the mean gas value, rounded to two decimals; nil when
	// no gas readings exist.
	AvgGas *float64 `json:"promedio_gas"`

	// LastTimestamp is the newest reading timestamp; nil when the
	// store is empty.
	LastTimestamp *string `json:"ultima_medicion"`
}

// PurgeResult reports what a retention cleanup removed.
type PurgeResult struct {
	// Removed is the number of rows deleted.
	Removed int64 `json:"eliminadas"`

	// Cutoff is the instant readings older than which were deleted.
	Cutoff time.Time `json:"corte"`
}

// UnitFor returns the display unit for a normalised reading type.
func UnitFor(readingType string) string {
	switch readingType {
	case TypeTemperature:
		return "°C"
	case TypeGas:
		return "ppm"
	default:
		return ""
	}
}
