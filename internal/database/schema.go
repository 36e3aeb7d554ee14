// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package database

import (
	"fmt"
)

// createTables creates the directory tables and indexes. All columns are
// defined in the initial CREATE TABLE statements; there is a single source
// of truth for the schema and no migration chain to replay on startup.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// tableCreationQueries returns the table and index creation statements.
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS regiones (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS categorias (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS caracteristicas (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS tags (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS destinos (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			descripcion TEXT,
			descripcion_corta TEXT,
			status TEXT NOT NULL DEFAULT 'draft',
			region_id BIGINT,
			latitud DOUBLE,
			longitud DOUBLE,
			average_rating DOUBLE NOT NULL DEFAULT 0,
			reviews_count INTEGER NOT NULL DEFAULT 0,
			precio DOUBLE,
			is_top BOOLEAN NOT NULL DEFAULT false,
			imagen_principal TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS destino_categoria (
			destino_id BIGINT NOT NULL,
			categoria_id BIGINT NOT NULL,
			PRIMARY KEY (destino_id, categoria_id)
		)`,

		`CREATE TABLE IF NOT EXISTS destino_caracteristica (
			destino_id BIGINT NOT NULL,
			caracteristica_id BIGINT NOT NULL,
			PRIMARY KEY (destino_id, caracteristica_id)
		)`,

		`CREATE TABLE IF NOT EXISTS destino_tag (
			destino_id BIGINT NOT NULL,
			tag_id BIGINT NOT NULL,
			PRIMARY KEY (destino_id, tag_id)
		)`,

		// Indexes for the hot filter paths: status gate, region filter,
		// slug lookups and rating-ordered listings.
		`CREATE INDEX IF NOT EXISTS idx_destinos_status ON destinos(status)`,
		`CREATE INDEX IF NOT EXISTS idx_destinos_region ON destinos(region_id)`,
		`CREATE INDEX IF NOT EXISTS idx_destinos_rating ON destinos(average_rating)`,
		`CREATE INDEX IF NOT EXISTS idx_destino_categoria_cat ON destino_categoria(categoria_id)`,
		`CREATE INDEX IF NOT EXISTS idx_destino_caracteristica_car ON destino_caracteristica(caracteristica_id)`,
		`CREATE INDEX IF NOT EXISTS idx_destino_tag_tag ON destino_tag(tag_id)`,
	}
}
