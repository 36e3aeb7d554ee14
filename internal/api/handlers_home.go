// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/descubre-mx/descubre/internal/database"
	"github.com/descubre-mx/descubre/internal/metrics"
	"github.com/descubre-mx/descubre/internal/models"
	"github.com/descubre-mx/descubre/internal/search"
)

const (
	homeTopLimit    = 8
	homeRecentLimit = 6
)

// Home handles GET /api/v1/home: the landing page aggregation of top
// picks, recent additions and the region list. Cached longest of all
// endpoints since the landing page tolerates stale data.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	value, hit, err := h.cache.Remember("home", h.cfg.Cache.HomeTTL, func() (interface{}, error) {
		return h.buildHome(r.Context())
	})
	metrics.RecordCacheLookup("home", hit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build home page", err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(value, time.Since(start), hit))
}

func (h *Handler) buildHome(ctx context.Context) (*models.HomeResponse, error) {
	top, err := h.store.ListDestinos(ctx, database.SectionTop, homeTopLimit)
	if err != nil {
		return nil, err
	}
	recent, err := h.store.ListDestinos(ctx, database.SectionRecent, homeRecentLimit)
	if err != nil {
		return nil, err
	}
	facets, err := h.store.FilterFacets(ctx)
	if err != nil {
		return nil, err
	}

	resp := &models.HomeResponse{
		TopDestinos:    make([]models.DestinoResult, 0, len(top)),
		RecentDestinos: make([]models.DestinoResult, 0, len(recent)),
		Regiones:       facets.Regiones,
	}
	for i := range top {
		resp.TopDestinos = append(resp.TopDestinos, search.ToResult(&top[i]))
	}
	for i := range recent {
		resp.RecentDestinos = append(resp.RecentDestinos, search.ToResult(&recent[i]))
	}
	return resp, nil
}

// Stats handles GET /api/v1/stats: published catalog counts and the
// average rating across published destinations.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	value, hit, err := h.cache.Remember("stats", h.cfg.Cache.StatsTTL, func() (interface{}, error) {
		return h.store.GetStats(r.Context())
	})
	metrics.RecordCacheLookup("stats", hit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load stats", err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(value, time.Since(start), hit))
}
