// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/descubre-mx/descubre/internal/logging"
)

type healthStatus struct {
	Status    string `json:"status"`
	UptimeSec int64  `json:"uptime_seconds,omitempty"`
}

// respondHealth writes the bare health payload. Health probes skip the
// API envelope and response caching headers.
func respondHealth(w http.ResponseWriter, status int, payload healthStatus) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to write health response")
	}
}

// Health handles GET /api/v1/health: a lightweight liveness summary
// with process uptime. Does not touch the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondHealth(w, http.StatusOK, healthStatus{
		Status:    "ok",
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
	})
}

// HealthLive handles GET /api/v1/health/live for orchestrator liveness
// probes. Always 200 while the process serves requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondHealth(w, http.StatusOK, healthStatus{Status: "ok"})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires the
// database to answer a ping; 503 takes the instance out of rotation.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		logging.Warn().Err(err).Msg("Readiness check failed")
		respondHealth(w, http.StatusServiceUnavailable, healthStatus{Status: "unavailable"})
		return
	}
	respondHealth(w, http.StatusOK, healthStatus{Status: "ok"})
}
