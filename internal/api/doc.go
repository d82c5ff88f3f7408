// Package api implements the HTTP REST API for AirGrid Core.
//
// This package provides:
//   - Ingestion and query endpoints for sensor measurements
//   - Aggregate statistics and retention maintenance endpoints
//   - JWT authentication for maintenance operations
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//   - TLS support for production deployments
//
// # Architecture
//
// The API server is a thin transport over the measurement service: it
// decodes requests, calls the service, and maps the service's error
// taxonomy onto status codes (validation 400, not found 404, storage
// 503). No business rules live here.
//
// # Wire contract
//
// Query parameters and payload fields keep the names the deployed
// device fleet and UI already use: "tipo", "valor", "dispositivo_id",
// "fecha_inicio", "fecha_fin", "limite".
//
// # Security
//
// POST /auth/login exchanges the configured admin credentials for a
// short-lived JWT. Destructive endpoints (purge) require a valid token;
// read and ingest endpoints are open, matching the field deployment
// where devices cannot hold credentials.
package api
