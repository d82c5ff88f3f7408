package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// System metrics (no auth required for basic monitoring)
		r.Get("/metrics", s.handleMetrics)

		// Measurement endpoints. Ingest and reads are open: field
		// devices cannot hold credentials.
		r.Route("/measurements", func(r chi.Router) {
			r.Post("/", s.handleIngest)
			r.Get("/", s.handleLatest)
			r.Get("/recientes", s.handleRecent)
			r.Get("/historico", s.handleHistory)
			r.Get("/stats", s.handleStats)

			// Destructive maintenance requires a token
			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Post("/purge", s.handlePurge)
			})
		})
	})

	return r
}

// handleHealth returns the server health status including a store
// round-trip. A failing store yields 503 so load balancers and
// monitors stop routing traffic here.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.HealthCheck(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"version":   s.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
