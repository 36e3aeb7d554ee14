// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package models

import (
	"time"
)

// DestinoResult is one advanced-search result row. Distance is present
// only when the geo filter was active for the request; it carries the same
// value (rounded to 2 decimals) that was used for filtering and sorting.
type DestinoResult struct {
	ID              int64                   `json:"id"`
	Nombre          string                  `json:"name"`
	Slug            string                  `json:"slug"`
	Descripcion     string                  `json:"description"`
	Precio          *float64                `json:"price,omitempty"`
	Rating          float64                 `json:"rating"`
	ReviewsCount    int                     `json:"reviews_count"`
	ImagenPrincipal *string                 `json:"main_image,omitempty"`
	Region          *RegionSummary          `json:"region,omitempty"`
	Categorias      []CategoriaSummary      `json:"categories"`
	Caracteristicas []CaracteristicaSummary `json:"characteristics"`
	IsTop           bool                    `json:"is_top"`
	CreatedAt       time.Time               `json:"created_at"`
	Distance        *float64                `json:"distance,omitempty"`
}

// Pagination describes an offset-paginated result window.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// SearchStats carries execution diagnostics for a search call.
// CacheHit is false when computed fresh; the caching wrapper flips it to
// true on a hit, the composer itself never does.
type SearchStats struct {
	Total           int   `json:"total_results"`
	ExecutionTimeMS int64 `json:"execution_time_ms"`
	CacheHit        bool  `json:"cache_hit"`
}

// AdvancedSearchResponse is the payload of GET /search/advanced.
// FiltersApplied echoes which filters were non-empty (counts for id-list
// filters, literal values for scalars) for UI state reconciliation.
type AdvancedSearchResponse struct {
	Destinos       []DestinoResult        `json:"destinos"`
	Pagination     Pagination             `json:"pagination"`
	FiltersApplied map[string]interface{} `json:"filters_applied"`
	SearchStats    SearchStats            `json:"search_stats"`
}

// DestinoSimilar is one similarity-ranked result. Score is rounded to
// 2 decimals; Factors lists the human-readable labels of the factors that
// contributed strictly positively.
type DestinoSimilar struct {
	ID               int64    `json:"id"`
	Nombre           string   `json:"name"`
	Slug             string   `json:"slug"`
	DescripcionCorta string   `json:"short_description"`
	ImagenPrincipal  *string  `json:"main_image,omitempty"`
	Rating           float64  `json:"rating"`
	ReviewsCount     int      `json:"reviews_count"`
	Score            float64  `json:"score"`
	Factors          []string `json:"factors"`
}

// DestinoReferencia identifies the reference destination of a similarity
// lookup in the response envelope.
type DestinoReferencia struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Slug   string `json:"slug"`
}

// SimilarStats carries diagnostics for a similarity lookup.
type SimilarStats struct {
	CandidatesEvaluated int     `json:"candidates_evaluated"`
	Returned            int     `json:"returned"`
	MinScore            float64 `json:"min_score"`
	ExecutionTimeMS     int64   `json:"execution_time_ms"`
}

// SimilarResponse is the payload of GET /destinos/{slug}/similar.
type SimilarResponse struct {
	DestinoReferencia DestinoReferencia `json:"destino_referencia"`
	DestinosSimilares []DestinoSimilar  `json:"destinos_similares"`
	Stats             SimilarStats      `json:"stats"`
}

// NearbyDestino is one radius-search result. DistanciaKm is rounded to
// 2 decimals from the same value used for filtering and sorting.
type NearbyDestino struct {
	ID              int64   `json:"id"`
	Nombre          string  `json:"name"`
	Slug            string  `json:"slug"`
	Rating          float64 `json:"rating"`
	ReviewsCount    int     `json:"reviews_count"`
	ImagenPrincipal *string `json:"main_image,omitempty"`
	Latitud         float64 `json:"latitude"`
	Longitud        float64 `json:"longitude"`
	DistanciaKm     float64 `json:"distancia_km"`
}

// SearchCenter echoes the center and radius of a nearby search.
type SearchCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
}

// NearbyResponse is the payload of GET /destinos/nearby.
type NearbyResponse struct {
	Destinations []NearbyDestino `json:"destinations"`
	SearchCenter SearchCenter    `json:"search_center"`
	TotalFound   int             `json:"total_found"`
}

// AutocompleteSuggestion is one name suggestion for the search box.
type AutocompleteSuggestion struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Slug   string `json:"slug"`
}

// FacetEntry is one filterable entity with its published-destination count.
type FacetEntry struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Slug   string `json:"slug"`
	Count  int    `json:"count"`
}

// FiltersResponse is the payload of GET /search/filters.
type FiltersResponse struct {
	Regiones        []FacetEntry `json:"regiones"`
	Categorias      []FacetEntry `json:"categorias"`
	Caracteristicas []FacetEntry `json:"caracteristicas"`
	Tags            []FacetEntry `json:"tags"`
}

// / HomeResponse is the payload of GET /home: the aggregation feeding the
// landing page sections.
type HomeResponse struct {
	TopDestinos    []DestinoResult `json:"top_destinos"`
	RecentDestinos []DestinoResult `json:"recent_destinos"`
	Regiones       []FacetEntry    `json:"regiones"`
}

// StatsResponse is the payload of GET /stats.
type StatsResponse struct {
	TotalDestinos   int     `json:"total_destinos"`
	TotalRegiones   int     `json:"total_regiones"`
	TotalCategorias int     `json:"total_categorias"`
	AverageRating   float64 `json:"average_rating"`
}
