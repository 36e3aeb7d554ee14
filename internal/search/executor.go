// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/descubre-mx/descubre/internal/geo"
	"github.com/descubre-mx/descubre/internal/models"
)

// Repository is the persistence surface the executor needs. Implemented
// by the database layer; faked in tests.
type Repository interface {
	// SearchDestinos returns destinations matching the WHERE body, with
	// associations preloaded. A negative limit means no limit.
	SearchDestinos(ctx context.Context, where string, args []interface{}, orderBy string, limit, offset int) ([]models.Destino, error)

	// CountDestinos returns the number of destinations matching the
	// WHERE body.
	CountDestinos(ctx context.Context, where string, args []interface{}) (int, error)
}

// Service executes composed destination searches.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a search service backed by the given repository.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "search").Logger(),
	}
}

// Search runs one advanced-search call: normalize, compose, execute,
// apply the in-memory geo stage when active, paginate, and map to the
// response DTO. SearchStats.CacheHit is always false here; the caching
// wrapper flips it on a hit.
func (s *Service) Search(ctx context.Context, f *FilterSet) (*models.AdvancedSearchResponse, error) {
	start := time.Now()

	f.Normalize()
	where, args := WhereClause(Compose(f))

	var (
		page  []models.Destino
		total int
		dists map[int64]float64
		err   error
	)

	if f.GeoActive() {
		page, total, dists, err = s.searchGeo(ctx, f, where, args)
	} else {
		page, total, err = s.searchPaged(ctx, f, where, args)
	}
	if err != nil {
		return nil, err
	}

	results := make([]models.DestinoResult, len(page))
	for i := range page {
		results[i] = ToResult(&page[i])
		if dists != nil {
			if d, ok := dists[page[i].ID]; ok {
				rounded := geo.RoundKm(d)
				results[i].Distance = &rounded
			}
		}
	}

	lastPage := (total + f.PerPage - 1) / f.PerPage
	if lastPage < 1 {
		lastPage = 1
	}

	elapsed := time.Since(start).Milliseconds()
	s.logger.Debug().
		Int("total", total).
		Int("page", f.Page).
		Bool("geo", f.GeoActive()).
		Int64("elapsed_ms", elapsed).
		Msg("Advanced search executed")

	return &models.AdvancedSearchResponse{
		Destinos: results,
		Pagination: models.Pagination{
			CurrentPage: f.Page,
			PerPage:     f.PerPage,
			Total:       total,
			LastPage:    lastPage,
		},
		FiltersApplied: f.FiltersApplied(),
		SearchStats: models.SearchStats{
			Total:           total,
			ExecutionTimeMS: elapsed,
			CacheHit:        false,
		},
	}, nil
}

// searchPaged runs the SQL-only path: count plus one page query.
func (s *Service) searchPaged(ctx context.Context, f *FilterSet, where string, args []interface{}) ([]models.Destino, int, error) {
	total, err := s.repo.CountDestinos(ctx, where, args)
	if err != nil {
		return nil, 0, fmt.Errorf("count destinos: %w", err)
	}

	rows, err := s.repo.SearchDestinos(ctx, where, args, OrderClause(f), f.PerPage, f.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("search destinos: %w", err)
	}

	return rows, total, nil
}

// searchGeo runs the geo path: fetch every SQL match, compute the
// haversine distance once per coordinate-bearing candidate, drop
// candidates outside the radius (destinations without coordinates are
// always excluded), sort, and paginate in memory. The same computed
// distance drives filtering, sorting, and display.
func (s *Service) searchGeo(ctx context.Context, f *FilterSet, where string, args []interface{}) ([]models.Destino, int, map[int64]float64, error) {
	orderBy := OrderClause(f)
	if orderBy == "" {
		// Distance sort resolves in memory; keep base retrieval stable.
		orderBy = "d.average_rating DESC, d.id ASC"
	}

	rows, err := s.repo.SearchDestinos(ctx, where, args, orderBy, -1, 0)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("search destinos: %w", err)
	}

	dists := make(map[int64]float64)
	within := make([]models.Destino, 0, len(rows))
	for i := range rows {
		if !rows[i].HasCoordinates() {
			continue
		}
		d := geo.DistanceKm(*f.Lat, *f.Lng, *rows[i].Latitud, *rows[i].Longitud)
		if d <= *f.DistanciaMax {
			dists[rows[i].ID] = d
			within = append(within, rows[i])
		}
	}

	if f.SortBy == SortDistance {
		asc := f.SortOrder == "asc"
		sort.SliceStable(within, func(i, j int) bool {
			if asc {
				return dists[within[i].ID] < dists[within[j].ID]
			}
			return dists[within[i].ID] > dists[within[j].ID]
		})
	}

	total := len(within)
	lo := f.Offset()
	if lo > total {
		lo = total
	}
	hi := lo + f.PerPage
	if hi > total {
		hi = total
	}

	return within[lo:hi], total, dists, nil
}

// ToResult maps a destination row to the search result DTO. Rating and
// review counts default to 0 when the destination has no reviews.
func ToResult(d *models.Destino) models.DestinoResult {
	return models.DestinoResult{
		ID:              d.ID,
		Nombre:          d.Nombre,
		Slug:            d.Slug,
		Descripcion:     d.Descripcion,
		Precio:          d.Precio,
		Rating:          d.AverageRating,
		ReviewsCount:    d.ReviewsCount,
		ImagenPrincipal: d.ImagenPrincipal,
		Region:          d.Region,
		Categorias:      d.Categorias,
		Caracteristicas: d.Caracteristicas,
		IsTop:           d.IsTop,
		CreatedAt:       d.CreatedAt,
	}
}
