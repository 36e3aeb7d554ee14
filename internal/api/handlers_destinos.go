// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/descubre-mx/descubre/internal/cache"
	"github.com/descubre-mx/descubre/internal/database"
	"github.com/descubre-mx/descubre/internal/logging"
	"github.com/descubre-mx/descubre/internal/metrics"
	"github.com/descubre-mx/descubre/internal/models"
	"github.com/descubre-mx/descubre/internal/search"
	"github.com/descubre-mx/descubre/internal/similar"
)

type listDestinosParams struct {
	Section string `validate:"required,oneof=top recent best_rated"`
	Limit   int    `validate:"min=1,max=50"`
}

// ListDestinos handles GET /api/v1/destinos: a curated section of the
// published catalog (top picks, most recent, best rated).
func (h *Handler) ListDestinos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := getIntParam(r, "limit", 12)
	if err != nil {
		respondBadParam(w, err)
		return
	}
	params := listDestinosParams{
		Section: r.URL.Query().Get("section"),
		Limit:   limit,
	}
	if params.Section == "" {
		params.Section = string(database.SectionTop)
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	key := cache.GenerateKey("sections", params)
	value, hit, err := h.cache.Remember(key, h.cfg.Cache.SectionsTTL, func() (interface{}, error) {
		destinos, err := h.store.ListDestinos(r.Context(), database.Section(params.Section), params.Limit)
		if err != nil {
			return nil, err
		}
		results := make([]models.DestinoResult, 0, len(destinos))
		for i := range destinos {
			results = append(results, search.ToResult(&destinos[i]))
		}
		return results, nil
	})
	metrics.RecordCacheLookup("sections", hit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list destinations", err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(value, time.Since(start), hit))
}

// DestinoDetail handles GET /api/v1/destinos/{slug}. Only published
// destinations are visible; drafts and pending entries report not found.
func (h *Handler) DestinoDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	slug := chi.URLParam(r, "slug")

	destino, err := h.store.GetDestinoBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Destination not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load destination", err)
		return
	}
	if destino.Status != models.StatusPublished {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Destination not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(search.ToResult(destino), time.Since(start), false))
}

// Similar handles GET /api/v1/destinos/{slug}/similar: candidates from
// shared taxonomy and region, scored and ranked against the reference.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	slug := chi.URLParam(r, "slug")

	limit, err := getIntParam(r, "limit", h.cfg.Similar.DefaultLimit)
	if err != nil {
		respondBadParam(w, err)
		return
	}
	opts := similar.Options{
		Limit:    limit,
		MinScore: h.cfg.Similar.DefaultMinScore,
	}

	boolParams := []struct {
		param string
		dst   *bool
	}{
		{"include_region", &opts.IncludeRegion},
		{"include_categories", &opts.IncludeCategories},
		{"include_characteristics", &opts.IncludeCharacteristics},
	}
	for _, p := range boolParams {
		v, err := getBoolParam(r, p.param, true)
		if err != nil {
			respondBadParam(w, err)
			return
		}
		*p.dst = v
	}

	minScore, err := getFloatPtr(r, "min_score")
	if err != nil {
		respondBadParam(w, err)
		return
	}
	if minScore != nil {
		opts.MinScore = *minScore
	}
	if err := opts.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	ref, err := h.store.GetDestinoBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Destination not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load destination", err)
		return
	}
	if ref.Status != models.StatusPublished {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Destination not found", nil)
		return
	}

	results, evaluated, err := h.ranker.FindSimilar(r.Context(), ref, opts)
	if err != nil {
		logging.CtxErr(r.Context(), err).Str("slug", slug).Msg("Similarity ranking failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to rank similar destinations", err)
		return
	}
	metrics.SimilarCandidatesEvaluated.Observe(float64(evaluated))

	resp := &models.SimilarResponse{
		DestinoReferencia: models.DestinoReferencia{
			ID:     ref.ID,
			Nombre: ref.Nombre,
			Slug:   ref.Slug,
		},
		DestinosSimilares: results,
		Stats: models.SimilarStats{
			CandidatesEvaluated: evaluated,
			Returned:            len(results),
			MinScore:            opts.MinScore,
			ExecutionTimeMS:     time.Since(start).Milliseconds(),
		},
	}

	respondJSON(w, http.StatusOK, successResponse(resp, time.Since(start), false))
}

type nearbyParams struct {
	Latitude  *float64 `validate:"required,latitude"`
	Longitude *float64 `validate:"required,longitude"`
	RadiusKm  *float64 `validate:"required,gt=0"`
	Limit     int      `validate:"min=1,max=100"`
	MinRating *float64 `validate:"omitempty,gte=1,lte=5"`
}

// Nearby handles GET /api/v1/destinos/nearby: published destinations
// with coordinates inside a haversine radius, nearest first.
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var params nearbyParams
	floatParams := []struct {
		param string
		dst   **float64
	}{
		{"latitude", &params.Latitude},
		{"longitude", &params.Longitude},
		{"radius", &params.RadiusKm},
		{"min_rating", &params.MinRating},
	}
	for _, p := range floatParams {
		v, err := getFloatPtr(r, p.param)
		if err != nil {
			respondBadParam(w, err)
			return
		}
		*p.dst = v
	}

	limit, err := getIntParam(r, "limit", 20)
	if err != nil {
		respondBadParam(w, err)
		return
	}
	params.Limit = limit

	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if *params.RadiusKm > h.cfg.Search.MaxRadiusKm {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"radius exceeds the maximum search radius", nil)
		return
	}

	filters := database.NearbyFilters{
		MinRating: params.MinRating,
	}
	id, err := getIntParam(r, "category_id", 0)
	if err != nil {
		respondBadParam(w, err)
		return
	}
	if id > 0 {
		categoryID := int64(id)
		filters.CategoriaID = &categoryID
	}

	candidates, err := h.store.NearbyCandidates(r.Context(), filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load nearby candidates", err)
		return
	}

	resp := search.Nearby(candidates, search.NearbyParams{
		Latitude:  *params.Latitude,
		Longitude: *params.Longitude,
		RadiusKm:  *params.RadiusKm,
		Limit:     params.Limit,
	})

	respondJSON(w, http.StatusOK, successResponse(resp, time.Since(start), false))
}
