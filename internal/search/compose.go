// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package search

import (
	"strings"
)

// Predicate is one named AND-condition of a composed query. Expr uses
// positional ? placeholders matching Args; the destinos table is aliased
// as d.
type Predicate struct {
	Name string
	Expr string
	Args []interface{}
}

// Compose translates a normalized filter set into the predicate list of
// a destination query. Predicates are independent AND-narrowing
// conditions; multi-id filters compose as "has any of" EXISTS groups.
// The geo-radius filter is not part of the SQL predicate list; it runs
// as an in-memory stage (see Service.Search).
func Compose(f *FilterSet) []Predicate {
	preds := []Predicate{
		{Name: "published", Expr: "d.status = ?", Args: []interface{}{"published"}},
	}

	if f.Query != "" {
		term := "%" + strings.ToLower(f.Query) + "%"
		preds = append(preds, Predicate{
			Name: "text",
			Expr: "(LOWER(d.nombre) LIKE ? OR LOWER(d.descripcion) LIKE ? OR LOWER(d.descripcion_corta) LIKE ?)",
			Args: []interface{}{term, term, term},
		})
	}

	if len(f.Categorias) > 0 {
		preds = append(preds, hasAnyPredicate("categorias", "destino_categoria", "categoria_id", f.Categorias))
	}
	if len(f.Caracteristicas) > 0 {
		preds = append(preds, hasAnyPredicate("caracteristicas", "destino_caracteristica", "caracteristica_id", f.Caracteristicas))
	}

	if len(f.Regiones) > 0 {
		preds = append(preds, Predicate{
			Name: "regiones",
			Expr: "d.region_id IN (" + placeholders(len(f.Regiones)) + ")",
			Args: idArgs(f.Regiones),
		})
	}

	if len(f.Tags) > 0 {
		preds = append(preds, hasAnyPredicate("tags", "destino_tag", "tag_id", f.Tags))
	}

	if f.PrecioMin != nil {
		preds = append(preds, Predicate{Name: "precio_min", Expr: "d.precio >= ?", Args: []interface{}{*f.PrecioMin}})
	}
	if f.PrecioMax != nil {
		preds = append(preds, Predicate{Name: "precio_max", Expr: "d.precio <= ?", Args: []interface{}{*f.PrecioMax}})
	}

	if f.RatingMin != nil {
		preds = append(preds, Predicate{Name: "rating_min", Expr: "d.average_rating >= ?", Args: []interface{}{*f.RatingMin}})
	}

	if f.IsTop != nil {
		preds = append(preds, Predicate{Name: "is_top", Expr: "d.is_top = ?", Args: []interface{}{*f.IsTop}})
	}

	return preds
}

// WhereClause folds a predicate list into a single WHERE body with AND
// composition, returning the clause and its flattened arguments.
func WhereClause(preds []Predicate) (string, []interface{}) {
	if len(preds) == 0 {
		return "1 = 1", nil
	}

	exprs := make([]string, len(preds))
	var args []interface{}
	for i, p := range preds {
		exprs[i] = p.Expr
		args = append(args, p.Args...)
	}
	return strings.Join(exprs, " AND "), args
}

// OrderClause resolves the sort strategy to a SQL ORDER BY body.
// Distance sorting is handled in memory when the geo stage runs (center
// plus radius); without an active geo stage it silently falls back to
// rating descending (documented default, not error suppression). A
// trailing id tiebreak keeps pagination deterministic.
func OrderClause(f *FilterSet) string {
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	var column string
	switch f.SortBy {
	case SortName:
		column = "d.nombre"
	case SortPrice:
		column = "d.precio"
	case SortCreatedAt:
		column = "d.created_at"
	case SortDistance:
		if f.GeoActive() {
			// Resolved by the in-memory distance stage.
			return ""
		}
		column = "d.average_rating"
		direction = "DESC"
	default:
		column = "d.average_rating"
	}

	return column + " " + direction + ", d.id ASC"
}

// hasAnyPredicate builds an EXISTS "has any of these ids" group over an
// association table.
func hasAnyPredicate(name, table, column string, ids []int64) Predicate {
	return Predicate{
		Name: name,
		Expr: "EXISTS (SELECT 1 FROM " + table + " a WHERE a.destino_id = d.id AND a." + column + " IN (" + placeholders(len(ids)) + "))",
		Args: idArgs(ids),
	}
}

// placeholders returns n comma-separated ? markers.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// idArgs widens an id list to []interface{} for the driver.
func idArgs(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
