// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/descubre-mx/descubre/internal/metrics"
	"github.com/descubre-mx/descubre/internal/models"
)

// destinoColumns is the shared SELECT list for destination rows. Every
// scanner in this package expects exactly these columns in this order.
const destinoColumns = `d.id, d.nombre, d.slug, d.descripcion, d.descripcion_corta, d.status,
	d.region_id, d.latitud, d.longitud, d.average_rating, d.reviews_count,
	d.precio, d.is_top, d.imagen_principal, d.created_at`

// SearchDestinos runs a composed destination query. The where clause and
// args come from the search composer; orderBy may be empty for engine
// order. A negative limit means no LIMIT clause (used by the geo stage,
// which paginates in memory after distance filtering).
func (db *DB) SearchDestinos(ctx context.Context, where string, args []interface{}, orderBy string, limit, offset int) (_ []models.Destino, err error) {
	defer func(start time.Time) { metrics.RecordDBQuery("search_destinos", time.Since(start), err) }(time.Now())

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(destinoColumns)
	sb.WriteString(" FROM destinos d")

	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	if orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}

	queryArgs := append([]interface{}{}, args...)
	if limit >= 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		queryArgs = append(queryArgs, limit, offset)
	}

	rows, err := db.conn.QueryContext(ctx, sb.String(), queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinos: %w", err)
	}
	defer rows.Close()

	destinos, err := scanDestinos(rows)
	if err != nil {
		return nil, err
	}

	if err := db.loadAssociations(ctx, destinos); err != nil {
		return nil, err
	}

	return destinos, nil
}

// CountDestinos counts rows matching a composed where clause.
func (db *DB) CountDestinos(ctx context.Context, where string, args []interface{}) (_ int, err error) {
	defer func(start time.Time) { metrics.RecordDBQuery("count_destinos", time.Since(start), err) }(time.Now())

	query := "SELECT COUNT(*) FROM destinos d"
	if where != "" {
		query += " WHERE " + where
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count destinos: %w", err)
	}

	return count, nil
}

// GetDestinoBySlug fetches a single destination with its associations.
// Returns ErrNotFound when the slug matches no row.
func (db *DB) GetDestinoBySlug(ctx context.Context, slug string) (*models.Destino, error) {
	destinos, err := db.SearchDestinos(ctx, "d.slug = ?", []interface{}{slug}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(destinos) == 0 {
		return nil, ErrNotFound
	}

	return &destinos[0], nil
}

// scanDestinos reads destination rows into models, mapping SQL NULLs to
// nil pointers.
func scanDestinos(rows *sql.Rows) ([]models.Destino, error) {
	var destinos []models.Destino

	for rows.Next() {
		var (
			d                models.Destino
			descripcion      sql.NullString
			descripcionCorta sql.NullString
			regionID         sql.NullInt64
			latitud          sql.NullFloat64
			longitud         sql.NullFloat64
			precio           sql.NullFloat64
			imagenPrincipal  sql.NullString
		)

		err := rows.Scan(
			&d.ID, &d.Nombre, &d.Slug, &descripcion, &descripcionCorta, &d.Status,
			&regionID, &latitud, &longitud, &d.AverageRating, &d.ReviewsCount,
			&precio, &d.IsTop, &imagenPrincipal, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan destino: %w", err)
		}

		d.Descripcion = descripcion.String
		d.DescripcionCorta = descripcionCorta.String
		if regionID.Valid {
			d.RegionID = &regionID.Int64
		}
		if latitud.Valid {
			d.Latitud = &latitud.Float64
		}
		if longitud.Valid {
			d.Longitud = &longitud.Float64
		}
		if precio.Valid {
			d.Precio = &precio.Float64
		}
		if imagenPrincipal.Valid {
			d.ImagenPrincipal = &imagenPrincipal.String
		}

		destinos = append(destinos, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate destinos: %w", err)
	}

	return destinos, nil
}

// loadAssociations batch-loads regions, categories, characteristics and
// tags for a result set. Four IN queries total regardless of result size.
func (db *DB) loadAssociations(ctx context.Context, destinos []models.Destino) error {
	if len(destinos) == 0 {
		return nil
	}

	ids := make([]interface{}, len(destinos))
	index := make(map[int64]*models.Destino, len(destinos))
	for i := range destinos {
		ids[i] = destinos[i].ID
		index[destinos[i].ID] = &destinos[i]
	}
	marks := placeholders(len(ids))

	if err := db.loadRegions(ctx, destinos, index); err != nil {
		return err
	}

	catQuery := fmt.Sprintf(`SELECT dc.destino_id, c.id, c.nombre, c.slug
		FROM destino_categoria dc
		JOIN categorias c ON c.id = dc.categoria_id
		WHERE dc.destino_id IN (%s)
		ORDER BY c.nombre`, marks)
	if err := db.loadSummaries(ctx, catQuery, ids, func(destinoID int64, s summaryRow) {
		d := index[destinoID]
		d.Categorias = append(d.Categorias, models.CategoriaSummary{ID: s.id, Nombre: s.nombre, Slug: s.slug})
	}); err != nil {
		return fmt.Errorf("failed to load categorias: %w", err)
	}

	carQuery := fmt.Sprintf(`SELECT dc.destino_id, c.id, c.nombre, c.slug
		FROM destino_caracteristica dc
		JOIN caracteristicas c ON c.id = dc.caracteristica_id
		WHERE dc.destino_id IN (%s)
		ORDER BY c.nombre`, marks)
	if err := db.loadSummaries(ctx, carQuery, ids, func(destinoID int64, s summaryRow) {
		d := index[destinoID]
		d.Caracteristicas = append(d.Caracteristicas, models.CaracteristicaSummary{ID: s.id, Nombre: s.nombre, Slug: s.slug})
	}); err != nil {
		return fmt.Errorf("failed to load caracteristicas: %w", err)
	}

	tagQuery := fmt.Sprintf(`SELECT dt.destino_id, t.id, t.nombre, t.slug
		FROM destino_tag dt
		JOIN tags t ON t.id = dt.tag_id
		WHERE dt.destino_id IN (%s)
		ORDER BY t.nombre`, marks)
	if err := db.loadSummaries(ctx, tagQuery, ids, func(destinoID int64, s summaryRow) {
		d := index[destinoID]
		d.Tags = append(d.Tags, models.TagSummary{ID: s.id, Nombre: s.nombre, Slug: s.slug})
	}); err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}

	return nil
}

// loadRegions attaches region summaries for the destinations that have one.
func (db *DB) loadRegions(ctx context.Context, destinos []models.Destino, index map[int64]*models.Destino) error {
	regionIDs := make(map[int64]struct{})
	for i := range destinos {
		if destinos[i].RegionID != nil {
			regionIDs[*destinos[i].RegionID] = struct{}{}
		}
	}
	if len(regionIDs) == 0 {
		return nil
	}

	args := make([]interface{}, 0, len(regionIDs))
	for id := range regionIDs {
		args = append(args, id)
	}

	query := fmt.Sprintf("SELECT id, nombre, slug FROM regiones WHERE id IN (%s)", placeholders(len(args)))
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load regiones: %w", err)
	}
	defer rows.Close()

	regions := make(map[int64]models.RegionSummary)
	for rows.Next() {
		var r models.RegionSummary
		if err := rows.Scan(&r.ID, &r.Nombre, &r.Slug); err != nil {
			return fmt.Errorf("failed to scan region: %w", err)
		}
		regions[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate regiones: %w", err)
	}

	for i := range destinos {
		d := index[destinos[i].ID]
		if d.RegionID != nil {
			if r, ok := regions[*d.RegionID]; ok {
				d.Region = &r
			}
		}
	}

	return nil
}

// summaryRow is one association row: a taxonomy entity joined to a destination.
type summaryRow struct {
	id     int64
	nombre string
	slug   string
}

func (db *DB) loadSummaries(ctx context.Context, query string, args []interface{}, attach func(int64, summaryRow)) error {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var destinoID int64
		var s summaryRow
		if err := rows.Scan(&destinoID, &s.id, &s.nombre, &s.slug); err != nil {
			return err
		}
		attach(destinoID, s)
	}

	return rows.Err()
}

// placeholders returns n comma-separated ? marks.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
