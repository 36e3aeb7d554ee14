// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package search

import (
	"sort"
	"strings"
)

// Sort strategies accepted by the composer.
const (
	SortName      = "name"
	SortRating    = "rating"
	SortPrice     = "price"
	SortDistance  = "distance"
	SortCreatedAt = "created_at"
)

// Pagination defaults.
const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// FilterSet is the validated, normalized set of filter parameters for one
// advanced-search call. It is constructed from request input, consumed
// once by the composer, and discarded; its hash is the cache key.
//
// All fields are optional except the implicit published-only constraint.
// Pointer fields distinguish "absent" from zero values.
type FilterSet struct {
	Query           string   `json:"query,omitempty"`
	Categorias      []int64  `json:"categorias,omitempty"`
	Caracteristicas []int64  `json:"caracteristicas,omitempty"`
	Regiones        []int64  `json:"regiones,omitempty"`
	Tags            []int64  `json:"tags,omitempty"`
	PrecioMin       *float64 `json:"precio_min,omitempty"`
	PrecioMax       *float64 `json:"precio_max,omitempty"`
	RatingMin       *float64 `json:"rating_min,omitempty"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	DistanciaMax    *float64 `json:"distancia_max,omitempty"`
	IsTop           *bool    `json:"is_top,omitempty"`
	SortBy          string   `json:"sort_by,omitempty"`
	SortOrder       string   `json:"sort_order,omitempty"`
	Page            int      `json:"page,omitempty"`
	PerPage         int      `json:"per_page,omitempty"`
}

// Normalize brings the filter set to canonical form: id lists are
// deduplicated and sorted ascending, the free-text query is trimmed,
// sort fields are lowercased with rating/desc defaults, and pagination
// is clamped to valid ranges. Two requests with identical effective
// filters normalize to the same value regardless of parameter order,
// which makes the derived cache key deterministic.
func (f *FilterSet) Normalize() {
	f.Query = strings.TrimSpace(f.Query)
	f.Categorias = normalizeIDs(f.Categorias)
	f.Caracteristicas = normalizeIDs(f.Caracteristicas)
	f.Regiones = normalizeIDs(f.Regiones)
	f.Tags = normalizeIDs(f.Tags)

	f.SortBy = strings.ToLower(strings.TrimSpace(f.SortBy))
	switch f.SortBy {
	case SortName, SortRating, SortPrice, SortDistance, SortCreatedAt:
	default:
		f.SortBy = SortRating
	}

	f.SortOrder = strings.ToLower(strings.TrimSpace(f.SortOrder))
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		f.SortOrder = "desc"
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

// GeoActive reports whether the geo-radius filter applies. Distance
// filtering only activates when lat, lng, and distancia_max are all
// present; partial geo parameters are silently ignored for filtering.
func (f *FilterSet) GeoActive() bool {
	return f.Lat != nil && f.Lng != nil && f.DistanciaMax != nil
}

// Offset returns the SQL offset for the current page.
func (f *FilterSet) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// FiltersApplied reports which filters were non-empty: counts for id-list
// filters, literal values for scalars. Consumed by clients for UI state
// reconciliation, never for logic.
func (f *FilterSet) FiltersApplied() map[string]interface{} {
	applied := make(map[string]interface{})

	if f.Query != "" {
		applied["query"] = f.Query
	}
	if len(f.Categorias) > 0 {
		applied["categorias"] = len(f.Categorias)
	}
	if len(f.Caracteristicas) > 0 {
		applied["caracteristicas"] = len(f.Caracteristicas)
	}
	if len(f.Regiones) > 0 {
		applied["regiones"] = len(f.Regiones)
	}
	if len(f.Tags) > 0 {
		applied["tags"] = len(f.Tags)
	}
	if f.PrecioMin != nil {
		applied["precio_min"] = *f.PrecioMin
	}
	if f.PrecioMax != nil {
		applied["precio_max"] = *f.PrecioMax
	}
	if f.RatingMin != nil {
		applied["rating_min"] = *f.RatingMin
	}
	if f.IsTop != nil {
		applied["is_top"] = *f.IsTop
	}
	if f.GeoActive() {
		applied["distancia_max"] = *f.DistanciaMax
	}

	return applied
}

// normalizeIDs deduplicates and sorts an id list ascending. Returns nil
// for empty input so absent and empty filters serialize identically.
func normalizeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
