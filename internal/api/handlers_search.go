// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/descubre-mx/descubre/internal/cache"
	"github.com/descubre-mx/descubre/internal/logging"
	"github.com/descubre-mx/descubre/internal/metrics"
	"github.com/descubre-mx/descubre/internal/models"
	"github.com/descubre-mx/descubre/internal/search"
)

// advancedSearchParams is the validated raw parameter surface of
// GET /search/advanced. SortBy/SortOrder reject unknown values here;
// left empty they fall back to rating/desc during normalization.
type advancedSearchParams struct {
	Query     string   `validate:"omitempty,max=200"`
	SortBy    string   `validate:"omitempty,oneof=name rating price distance created_at"`
	SortOrder string   `validate:"omitempty,oneof=asc desc"`
	RatingMin *float64 `validate:"omitempty,gte=1,lte=5"`
	Lat       *float64 `validate:"omitempty,latitude"`
	Lng       *float64 `validate:"omitempty,longitude"`
	Distancia *float64 `validate:"omitempty,gt=0"`
	Page      int      `validate:"min=1"`
	PerPage   int      `validate:"min=1,max=100"`
}

// AdvancedSearch handles GET /api/v1/search/advanced: faceted search
// with optional text, taxonomy, price, rating and geo filters. Results
// are cached per normalized filter set.
func (h *Handler) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	f := &search.FilterSet{
		Query:     q.Get("query"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	floatParams := []struct {
		param string
		dst   **float64
	}{
		{"precio_min", &f.PrecioMin},
		{"precio_max", &f.PrecioMax},
		{"rating_min", &f.RatingMin},
		{"lat", &f.Lat},
		{"lng", &f.Lng},
		{"distancia_max", &f.DistanciaMax},
	}
	for _, p := range floatParams {
		v, err := getFloatPtr(r, p.param)
		if err != nil {
			respondBadParam(w, err)
			return
		}
		*p.dst = v
	}

	isTop, err := getBoolPtr(r, "is_top")
	if err != nil {
		respondBadParam(w, err)
		return
	}
	f.IsTop = isTop

	if f.Page, err = getIntParam(r, "page", 1); err != nil {
		respondBadParam(w, err)
		return
	}
	if f.PerPage, err = getIntParam(r, "per_page", h.cfg.Search.DefaultPerPage); err != nil {
		respondBadParam(w, err)
		return
	}

	idLists := []struct {
		param string
		dst   *[]int64
	}{
		{"categorias", &f.Categorias},
		{"caracteristicas", &f.Caracteristicas},
		{"regiones", &f.Regiones},
		{"tags", &f.Tags},
	}
	for _, l := range idLists {
		ids, err := parseInt64List(l.param, q.Get(l.param))
		if err != nil {
			respondBadParam(w, err)
			return
		}
		*l.dst = ids
	}

	params := advancedSearchParams{
		Query:     f.Query,
		SortBy:    strings.ToLower(strings.TrimSpace(f.SortBy)),
		SortOrder: strings.ToLower(strings.TrimSpace(f.SortOrder)),
		RatingMin: f.RatingMin,
		Lat:       f.Lat,
		Lng:       f.Lng,
		Distancia: f.DistanciaMax,
		Page:      f.Page,
		PerPage:   f.PerPage,
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if f.PrecioMin != nil && f.PrecioMax != nil && *f.PrecioMax < *f.PrecioMin {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"precio_max must be greater than or equal to precio_min", nil)
		return
	}
	if f.DistanciaMax != nil && *f.DistanciaMax > h.cfg.Search.MaxRadiusKm {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"distancia_max exceeds the maximum search radius", nil)
		return
	}

	// Normalize before deriving the key so equivalent requests share a
	// cache entry regardless of parameter order.
	f.Normalize()
	key := cache.GenerateKey("advanced_search", f)

	value, hit, err := h.cache.Remember(key, h.cfg.Cache.AdvancedSearchTTL, func() (interface{}, error) {
		return h.searcher.Search(r.Context(), f)
	})
	metrics.RecordCacheLookup("advanced_search", hit)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Advanced search failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to execute search", err)
		return
	}

	resp := value.(*models.AdvancedSearchResponse)
	if hit {
		// Copy before flipping the hit flag so the cached value stays
		// pristine for later readers.
		served := *resp
		served.SearchStats.CacheHit = true
		resp = &served
	}

	respondJSON(w, http.StatusOK, successResponse(resp, time.Since(start), hit))
}

// autocompleteParams validates GET /search/autocomplete input.
type autocompleteParams struct {
	Query string `validate:"required,min=1,max=100"`
	Limit int    `validate:"min=1,max=20"`
}

// Autocomplete handles GET /api/v1/search/autocomplete: published
// destination names matching a partial query, prefix matches first.
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := getIntParam(r, "limit", 10)
	if err != nil {
		respondBadParam(w, err)
		return
	}
	params := autocompleteParams{
		Query: strings.TrimSpace(r.URL.Query().Get("query")),
		Limit: limit,
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	key := cache.GenerateKey("autocomplete", params)
	value, hit, err := h.cache.Remember(key, h.cfg.Cache.AutocompleteTTL, func() (interface{}, error) {
		return h.store.Autocomplete(r.Context(), params.Query, params.Limit)
	})
	metrics.RecordCacheLookup("autocomplete", hit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load suggestions", err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(value, time.Since(start), hit))
}

// Filters handles GET /api/v1/search/filters: the facet catalog with
// published-destination counts, for building the search UI.
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	value, hit, err := h.cache.Remember("filters", h.cfg.Cache.FiltersTTL, func() (interface{}, error) {
		return h.store.FilterFacets(r.Context())
	})
	metrics.RecordCacheLookup("filters", hit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load filters", err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(value, time.Since(start), hit))
}
