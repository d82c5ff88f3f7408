// Package influxdb provides InfluxDB connectivity for AirGrid Core.
//
// It wraps the official influxdb-client-go v2 library with AirGrid-specific
// patterns for connection management, reading mirroring, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Sensor reading mirrors (temperature, gas) for dashboards
//   - Ad-hoc operational metrics via the generic point writers
//
// The relational store in internal/infrastructure/database remains the
// source of truth; this mirror is optional and loss-tolerant.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "airgrid",
//	    Bucket: "readings",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Mirror an accepted reading
//	client.WriteReading(1, "temperatura", 21.5, time.Now())
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This reduces network overhead for high-frequency telemetry data.
package influxdb
