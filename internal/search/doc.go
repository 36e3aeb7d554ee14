// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

// Package search implements the advanced-search query composition for
// destinations: a flat set of optional filter parameters is normalized,
// translated into an explicit predicate list, folded into a single SQL
// WHERE clause, and executed against the destination repository with one
// of five sort strategies and offset pagination.
//
// Geo-radius filtering runs as an in-memory stage after the SQL
// predicates: the haversine distance is computed once per candidate and
// the same value drives filtering, sorting, and the displayed
// distancia_km. Destinations without coordinates never appear in
// geo-filtered results.
//
// The composer is independent of the persistence layer; the Repository
// interface keeps it testable with an in-memory fake.
package search
