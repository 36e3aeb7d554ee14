// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/descubre-mx/descubre/internal/models"
)

// Section selects a curated destination listing.
type Section string

const (
	SectionTop       Section = "top"
	SectionRecent    Section = "recent"
	SectionBestRated Section = "best_rated"
)

// sectionOrder maps each section to its ordering. is_top filtering for
// SectionTop happens in the where clause, not here.
var sectionOrder = map[Section]string{
	SectionTop:       "d.average_rating DESC, d.id ASC",
	SectionRecent:    "d.created_at DESC, d.id ASC",
	SectionBestRated: "d.average_rating DESC, d.reviews_count DESC, d.id ASC",
}

// ListDestinos returns a curated section of published destinations.
func (db *DB) ListDestinos(ctx context.Context, section Section, limit int) ([]models.Destino, error) {
	orderBy, ok := sectionOrder[section]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", section)
	}

	where := "d.status = ?"
	args := []interface{}{string(models.StatusPublished)}
	if section == SectionTop {
		where += " AND d.is_top = ?"
		args = append(args, true)
	}

	return db.SearchDestinos(ctx, where, args, orderBy, limit, 0)
}

// Autocomplete returns published destination names matching the query,
// prefix matches first. The match is case-insensitive and substring-based.
func (db *DB) Autocomplete(ctx context.Context, query string, limit int) ([]models.AutocompleteSuggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.AutocompleteSuggestion{}, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, nombre, slug FROM destinos
		WHERE status = ? AND LOWER(nombre) LIKE ?
		ORDER BY CASE WHEN LOWER(nombre) LIKE ? THEN 0 ELSE 1 END, nombre, id
		LIMIT ?`,
		string(models.StatusPublished), "%"+q+"%", q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query autocomplete: %w", err)
	}
	defer rows.Close()

	suggestions := []models.AutocompleteSuggestion{}
	for rows.Next() {
		var s models.AutocompleteSuggestion
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}

	return suggestions, nil
}

// FilterFacets returns the filterable entities with their counts of
// published destinations. Entities with no published destination are
// omitted; the UI has nothing to filter by for them.
func (db *DB) FilterFacets(ctx context.Context) (*models.FiltersResponse, error) {
	resp := &models.FiltersResponse{}

	var err error
	if resp.Regiones, err = db.facetQuery(ctx, `
		SELECT r.id, r.nombre, r.slug, COUNT(d.id)
		FROM regiones r
		JOIN destinos d ON d.region_id = r.id AND d.status = ?
		GROUP BY r.id, r.nombre, r.slug
		ORDER BY COUNT(d.id) DESC, r.nombre`); err != nil {
		return nil, fmt.Errorf("failed to load region facets: %w", err)
	}

	if resp.Categorias, err = db.facetQuery(ctx, `
		SELECT c.id, c.nombre, c.slug, COUNT(DISTINCT d.id)
		FROM categorias c
		JOIN destino_categoria dc ON dc.categoria_id = c.id
		JOIN destinos d ON d.id = dc.destino_id AND d.status = ?
		GROUP BY c.id, c.nombre, c.slug
		ORDER BY COUNT(DISTINCT d.id) DESC, c.nombre`); err != nil {
		return nil, fmt.Errorf("failed to load categoria facets: %w", err)
	}

	if resp.Caracteristicas, err = db.facetQuery(ctx, `
		SELECT c.id, c.nombre, c.slug, COUNT(DISTINCT d.id)
		FROM caracteristicas c
		JOIN destino_caracteristica dc ON dc.caracteristica_id = c.id
		JOIN destinos d ON d.id = dc.destino_id AND d.status = ?
		GROUP BY c.id, c.nombre, c.slug
		ORDER BY COUNT(DISTINCT d.id) DESC, c.nombre`); err != nil {
		return nil, fmt.Errorf("failed to load caracteristica facets: %w", err)
	}

	if resp.Tags, err = db.facetQuery(ctx, `
		SELECT t.id, t.nombre, t.slug, COUNT(DISTINCT d.id)
		FROM tags t
		JOIN destino_tag dt ON dt.tag_id = t.id
		JOIN destinos d ON d.id = dt.destino_id AND d.status = ?
		GROUP BY t.id, t.nombre, t.slug
		ORDER BY COUNT(DISTINCT d.id) DESC, t.nombre`); err != nil {
		return nil, fmt.Errorf("failed to load tag facets: %w", err)
	}

	return resp, nil
}

func (db *DB) facetQuery(ctx context.Context, query string) ([]models.FacetEntry, error) {
	rows, err := db.conn.QueryContext(ctx, query, string(models.StatusPublished))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.FacetEntry{}
	for rows.Next() {
		var e models.FacetEntry
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Slug, &e.Count); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetStats returns directory-wide aggregates over published destinations.
func (db *DB) GetStats(ctx context.Context) (*models.StatsResponse, error) {
	stats := &models.StatsResponse{}

	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(average_rating), 0)
		FROM destinos WHERE status = ?`,
		string(models.StatusPublished)).Scan(&stats.TotalDestinos, &stats.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("failed to load destino stats: %w", err)
	}

	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM regiones").Scan(&stats.TotalRegiones); err != nil {
		return nil, fmt.Errorf("failed to count regiones: %w", err)
	}

	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categorias").Scan(&stats.TotalCategorias); err != nil {
		return nil, fmt.Errorf("failed to count categorias: %w", err)
	}

	return stats, nil
}
