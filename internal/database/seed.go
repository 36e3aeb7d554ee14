// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package database

import (
	"context"
	"fmt"

	"github.com/descubre-mx/descubre/internal/logging"
)

// SeedMockData populates the directory with a small fixture set for
// development and demos. Idempotent: a non-empty destinos table skips
// seeding entirely.
func (db *DB) SeedMockData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM destinos").Scan(&count); err != nil {
		return fmt.Errorf("failed to check destinos count: %w", err)
	}
	if count > 0 {
		logging.Debug().Int("existing", count).Msg("Skipping mock data seed, destinos table not empty")
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range seedStatements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to seed: %s: %w", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logging.Info().Msg("Seeded mock destination data")
	return nil
}

func seedStatements() []string {
	return []string{
		`INSERT INTO regiones (id, nombre, slug) VALUES
			(1, 'Riviera Maya', 'riviera-maya'),
			(2, 'Huasteca Potosina', 'huasteca-potosina'),
			(3, 'Valle de México', 'valle-de-mexico'),
			(4, 'Costa Oaxaqueña', 'costa-oaxaquena')`,

		`INSERT INTO categorias (id, nombre, slug) VALUES
			(1, 'Playa', 'playa'),
			(2, 'Ecoturismo', 'ecoturismo'),
			(3, 'Pueblo Mágico', 'pueblo-magico'),
			(4, 'Arqueología', 'arqueologia'),
			(5, 'Gastronomía', 'gastronomia')`,

		`INSERT INTO caracteristicas (id, nombre, slug) VALUES
			(1, 'Pet Friendly', 'pet-friendly'),
			(2, 'Acceso para sillas de ruedas', 'accesible'),
			(3, 'Estacionamiento', 'estacionamiento'),
			(4, 'Guías certificados', 'guias-certificados'),
			(5, 'Zona para acampar', 'acampar')`,

		`INSERT INTO tags (id, nombre, slug) VALUES
			(1, 'Familiar', 'familiar'),
			(2, 'Aventura', 'aventura'),
			(3, 'Romántico', 'romantico'),
			(4, 'Fotografía', 'fotografia')`,

		`INSERT INTO destinos
			(id, nombre, slug, descripcion, descripcion_corta, status, region_id,
			 latitud, longitud, average_rating, reviews_count, precio, is_top, imagen_principal)
		VALUES
			(1, 'Playa del Carmen', 'playa-del-carmen',
			 'Arena blanca y arrecifes a unos pasos de la Quinta Avenida.',
			 'Playa icónica de la Riviera Maya.', 'published', 1,
			 20.6296, -87.0739, 4.6, 1820, 450, true, '/img/playa-del-carmen.jpg'),
			(2, 'Tulum', 'tulum',
			 'Zona arqueológica frente al mar Caribe con cenotes cercanos.',
			 'Ruinas mayas sobre el acantilado.', 'published', 1,
			 20.2114, -87.4654, 4.7, 2410, 520, true, '/img/tulum.jpg'),
			(3, 'Cascada de Tamul', 'cascada-de-tamul',
			 'Caída de 105 metros en el corazón de la Huasteca.',
			 'La cascada más alta de San Luis Potosí.', 'published', 2,
			 21.8667, -99.1167, 4.8, 960, 350, true, '/img/tamul.jpg'),
			(4, 'Xilitla', 'xilitla',
			 'Pueblo mágico con el jardín surrealista de Edward James.',
			 'Surrealismo entre la selva.', 'published', 2,
			 21.3857, -98.9903, 4.5, 1150, 280, false, '/img/xilitla.jpg'),
			(5, 'Teotihuacán', 'teotihuacan',
			 'La ciudad de los dioses y sus pirámides del Sol y la Luna.',
			 'Pirámides a una hora de CDMX.', 'published', 3,
			 19.6925, -98.8439, 4.7, 3320, 90, true, '/img/teotihuacan.jpg'),
			(6, 'Mazunte', 'mazunte',
			 'Playa tranquila con santuario de tortugas y punta Cometa.',
			 'Playa bohemia de Oaxaca.', 'published', 4,
			 15.6669, -96.5548, 4.4, 670, 200, false, '/img/mazunte.jpg'),
			(7, 'Bacalar', 'bacalar',
			 'Laguna de los siete colores y fuerte de San Felipe.',
			 'Laguna de siete colores.', 'published', 1,
			 18.6813, -88.3913, 4.6, 1540, 380, false, '/img/bacalar.jpg'),
			(8, 'Sótano de las Golondrinas', 'sotano-de-las-golondrinas',
			 'Abismo de más de 500 metros, hogar de miles de vencejos.',
			 'Abismo natural en la Huasteca.', 'published', 2,
			 21.5994, -99.0989, 4.7, 540, 150, false, '/img/golondrinas.jpg'),
			(9, 'Mercado de Coyoacán', 'mercado-de-coyoacan',
			 'Tostadas, esquites y artesanía en el sur de la capital.',
			 'Sabores del sur de CDMX.', 'pending_review', 3,
			 19.3500, -99.1622, 4.2, 310, 50, false, NULL),
			(10, 'Cenote Secreto', 'cenote-secreto',
			 'Cenote aún sin abrir al público.',
			 'Próximamente.', 'draft', 1,
			 NULL, NULL, 0, 0, NULL, false, NULL)`,

		`INSERT INTO destino_categoria (destino_id, categoria_id) VALUES
			(1, 1), (1, 5),
			(2, 1), (2, 4),
			(3, 2),
			(4, 3), (4, 2),
			(5, 4),
			(6, 1), (6, 2),
			(7, 2), (7, 1),
			(8, 2),
			(9, 5),
			(10, 2)`,

		`INSERT INTO destino_caracteristica (destino_id, caracteristica_id) VALUES
			(1, 1), (1, 3),
			(2, 3), (2, 4),
			(3, 4), (3, 5),
			(4, 3),
			(5, 2), (5, 3), (5, 4),
			(6, 1), (6, 5),
			(7, 1), (7, 3),
			(8, 4), (8, 5),
			(9, 2)`,

		`INSERT INTO destino_tag (destino_id, tag_id) VALUES
			(1, 1), (1, 3),
			(2, 3), (2, 4),
			(3, 2), (3, 4),
			(4, 4),
			(5, 1), (5, 4),
			(6, 3),
			(7, 1), (7, 2),
			(8, 2),
			(9, 1)`,
	}
}
