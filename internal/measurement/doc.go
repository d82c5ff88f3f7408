// Package measurement implements the sensor reading core of AirGrid:
// validation and normalisation of raw device payloads, safe dynamic
// query construction from optional filter criteria, SQLite persistence,
// and the service facade the transport layers call.
//
// # Architecture
//
// The package is layered bottom-up:
//
//   - Validate() — pure payload validation/normalisation rules
//   - BuildFilter() — criteria → parameterised WHERE fragment
//   - Repository — parameterised statements against the store, no rules
//   - Service — orchestrates the three for ingest, query, stats, purge
//
// Readings arrive over HTTP (internal/api) or MQTT (internal/ingest);
// both feed Service.Ingest and share every rule below.
//
// # Wire contract
//
// Device payloads use the field names the deployed fleet already sends:
// "tipo" (reading type), "valor" (value), optional "timestamp". Filter
// criteria use "dispositivo_id", "tipo", "fecha_inicio", "fecha_fin",
// "limite". Renaming these would orphan devices in the field.
//
// # Error taxonomy
//
// Validation failures (bad caller input) and storage failures (store
// unavailable or query error) are distinct sentinel families so that
// transports can map them to 4xx vs 503 without string matching. Use
// IsValidationError() or errors.Is() at the boundary. No failure is
// ever retried or swallowed inside this package.
package measurement
