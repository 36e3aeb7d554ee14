// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package database

import (
	"context"
	"strings"
	"time"

	"github.com/descubre-mx/descubre/internal/metrics"
	"github.com/descubre-mx/descubre/internal/models"
)

// NearbyFilters narrows the nearby candidate pool before the in-memory
// haversine stage. Both fields are optional.
type NearbyFilters struct {
	CategoriaID *int64
	MinRating   *float64
}

// NearbyCandidates returns published destinations with coordinates,
// optionally narrowed by category and minimum rating. Radius filtering
// and distance ordering happen in memory on top of this pool.
func (db *DB) NearbyCandidates(ctx context.Context, f NearbyFilters) (_ []models.Destino, err error) {
	defer func(start time.Time) { metrics.RecordDBQuery("nearby_candidates", time.Since(start), err) }(time.Now())

	where := []string{
		"d.status = ?",
		"d.latitud IS NOT NULL",
		"d.longitud IS NOT NULL",
	}
	args := []interface{}{string(models.StatusPublished)}

	if f.CategoriaID != nil {
		where = append(where,
			"EXISTS (SELECT 1 FROM destino_categoria dc WHERE dc.destino_id = d.id AND dc.categoria_id = ?)")
		args = append(args, *f.CategoriaID)
	}

	if f.MinRating != nil {
		where = append(where, "d.average_rating >= ?")
		args = append(args, *f.MinRating)
	}

	return db.SearchDestinos(ctx, strings.Join(where, " AND "), args, "d.id ASC", -1, 0)
}
