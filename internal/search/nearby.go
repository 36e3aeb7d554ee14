// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package search

import (
	"sort"

	"github.com/descubre-mx/descubre/internal/geo"
	"github.com/descubre-mx/descubre/internal/models"
)

// NearbyParams describes a radius search around a center point.
type NearbyParams struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Limit     int
}

// Nearby filters candidates to those within the radius, sorts them
// nearest first, and truncates to the limit. Candidates without
// coordinates are excluded before the distance predicate is applied.
// TotalFound counts all destinations inside the radius, before the
// limit truncation. Pure function over the candidate slice.
func Nearby(candidates []models.Destino, p NearbyParams) *models.NearbyResponse {
	type hit struct {
		destino *models.Destino
		dist    float64
	}

	hits := make([]hit, 0, len(candidates))
	for i := range candidates {
		if !candidates[i].HasCoordinates() {
			continue
		}
		d := geo.DistanceKm(p.Latitude, p.Longitude, *candidates[i].Latitud, *candidates[i].Longitud)
		if d <= p.RadiusKm {
			hits = append(hits, hit{destino: &candidates[i], dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	total := len(hits)
	if p.Limit > 0 && len(hits) > p.Limit {
		hits = hits[:p.Limit]
	}

	results := make([]models.NearbyDestino, len(hits))
	for i, h := range hits {
		results[i] = models.NearbyDestino{
			ID:              h.destino.ID,
			Nombre:          h.destino.Nombre,
			Slug:            h.destino.Slug,
			Rating:          h.destino.AverageRating,
			ReviewsCount:    h.destino.ReviewsCount,
			ImagenPrincipal: h.destino.ImagenPrincipal,
			Latitud:         *h.destino.Latitud,
			Longitud:        *h.destino.Longitud,
			DistanciaKm:     geo.RoundKm(h.dist),
		}
	}

	return &models.NearbyResponse{
		Destinations: results,
		SearchCenter: models.SearchCenter{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			RadiusKm:  p.RadiusKm,
		},
		TotalFound: total,
	}
}
