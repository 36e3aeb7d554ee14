// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/descubre-mx/descubre/internal/metrics"
	"github.com/descubre-mx/descubre/internal/models"
	"github.com/descubre-mx/descubre/internal/similar"
)

// FindCandidates returns the candidate pool for a similarity lookup:
// published destinations other than the reference. Category and
// characteristic overlap narrow the pool (AND); a shared region widens it
// back (OR), so same-region destinations stay in the running even without
// taxonomy overlap. Ordering is deterministic so stable ranking ties keep
// a reproducible order.
func (db *DB) FindCandidates(ctx context.Context, ref *models.Destino, opts similar.Options) (_ []models.Destino, err error) {
	defer func(start time.Time) { metrics.RecordDBQuery("find_candidates", time.Since(start), err) }(time.Now())

	where := []string{"d.status = ?", "d.id != ?"}
	args := []interface{}{string(models.StatusPublished), ref.ID}

	var narrowing []string
	var narrowingArgs []interface{}

	if opts.IncludeCategories {
		if ids := ref.CategoriaIDs(); len(ids) > 0 {
			narrowing = append(narrowing, fmt.Sprintf(
				`EXISTS (SELECT 1 FROM destino_categoria dc WHERE dc.destino_id = d.id AND dc.categoria_id IN (%s))`,
				placeholders(len(ids))))
			for _, id := range ids {
				narrowingArgs = append(narrowingArgs, id)
			}
		}
	}

	if opts.IncludeCharacteristics {
		if ids := ref.CaracteristicaIDs(); len(ids) > 0 {
			narrowing = append(narrowing, fmt.Sprintf(
				`EXISTS (SELECT 1 FROM destino_caracteristica dc WHERE dc.destino_id = d.id AND dc.caracteristica_id IN (%s))`,
				placeholders(len(ids))))
			for _, id := range ids {
				narrowingArgs = append(narrowingArgs, id)
			}
		}
	}

	var widening string
	var wideningArgs []interface{}
	if opts.IncludeRegion && ref.RegionID != nil {
		widening = "d.region_id = ?"
		wideningArgs = append(wideningArgs, *ref.RegionID)
	}

	// Region matching only ever widens. With no narrowing predicates the
	// OR degenerates to TRUE, so the pool stays at every published
	// destination except the reference.
	switch {
	case len(narrowing) > 0 && widening != "":
		where = append(where, "(("+strings.Join(narrowing, " AND ")+") OR "+widening+")")
		args = append(args, narrowingArgs...)
		args = append(args, wideningArgs...)
	case len(narrowing) > 0:
		where = append(where, "("+strings.Join(narrowing, " AND ")+")")
		args = append(args, narrowingArgs...)
	}

	return db.SearchDestinos(ctx, strings.Join(where, " AND "), args, "d.id ASC", -1, 0)
}
