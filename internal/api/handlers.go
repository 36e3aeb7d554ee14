// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

// Package api provides the HTTP layer: chi routing, middleware and the
// request handlers for the directory, search, similarity and geo
// endpoints.
package api

import (
	"context"
	"time"

	"github.com/descubre-mx/descubre/internal/cache"
	"github.com/descubre-mx/descubre/internal/config"
	"github.com/descubre-mx/descubre/internal/database"
	"github.com/descubre-mx/descubre/internal/models"
	"github.com/descubre-mx/descubre/internal/search"
	"github.com/descubre-mx/descubre/internal/similar"
)

// Store is the persistence surface the handlers need. Implemented by
// database.DB; faked in handler tests.
type Store interface {
	GetDestinoBySlug(ctx context.Context, slug string) (*models.Destino, error)
	ListDestinos(ctx context.Context, section database.Section, limit int) ([]models.Destino, error)
	NearbyCandidates(ctx context.Context, f database.NearbyFilters) ([]models.Destino, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]models.AutocompleteSuggestion, error)
	FilterFacets(ctx context.Context) (*models.FiltersResponse, error)
	GetStats(ctx context.Context) (*models.StatsResponse, error)
	Ping(ctx context.Context) error
}

// Searcher runs advanced searches. Implemented by search.Service.
type Searcher interface {
	Search(ctx context.Context, f *search.FilterSet) (*models.AdvancedSearchResponse, error)
}

// Ranker runs similarity lookups. Implemented by similar.Ranker.
type Ranker interface {
	FindSimilar(ctx context.Context, ref *models.Destino, opts similar.Options) ([]models.DestinoSimilar, int, error)
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	store     Store
	searcher  Searcher
	ranker    Ranker
	cache     *cache.Cache
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates the handler set.
func NewHandler(store Store, searcher Searcher, ranker Ranker, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		searcher:  searcher,
		ranker:    ranker,
		cache:     c,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// successResponse wraps a payload in the standard envelope.
func successResponse(data interface{}, queryTime time.Duration, cached bool) *models.APIResponse {
	return &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
			Cached:      cached,
		},
	}
}
