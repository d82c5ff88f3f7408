package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nerrad567/airgrid-core/internal/measurement"
)

// purgeRequest is the optional request body for POST /measurements/purge.
type purgeRequest struct {
	AgeDays int `json:"age_days"`
}

// handleIngest accepts a raw device reading.
//
// The payload is decoded with json.Number so numeric strings and JSON
// numbers survive to the validator unchanged; the validator, not the
// transport, decides what counts as a number.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var raw measurement.RawReading
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	stored, err := s.service.Ingest(r.Context(), &raw)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// handleLatest returns the single newest measurement.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	latest, err := s.service.Latest(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, latest)
}

// handleRecent returns the newest N measurements (?limite=N, default 50).
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := measurement.DefaultRecentLimit
	if v := r.URL.Query().Get("limite"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, measurement.ErrInvalidLimit.Error())
			return
		}
		limit = parsed
	}

	measurements, err := s.service.Recent(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, measurements)
}

// handleHistory returns measurements matching the optional filter
// criteria, newest first.
//
// Filters follow the lenient policy: unparseable or unknown values
// impose no constraint rather than failing the request. The parameter
// names are the fleet's wire contract (see package doc).
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	criteria := measurement.Criteria{
		Type:     strings.TrimSpace(query.Get("tipo")),
		DateFrom: strings.TrimSpace(query.Get("fecha_inicio")),
		DateTo:   strings.TrimSpace(query.Get("fecha_fin")),
	}
	if v := query.Get("dispositivo_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			criteria.DeviceID = id
		}
	}
	if v := query.Get("limite"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			criteria.Limit = limit
		}
	}

	measurements, err := s.service.Query(r.Context(), criteria)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, measurements)
}

// handleStats returns aggregate statistics over the whole store.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handlePurge deletes measurements older than the requested age
// (default 30 days). The body is optional.
func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	var req purgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	result, err := s.service.Purge(r.Context(), req.AgeDays)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
