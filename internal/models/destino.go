// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package models

import (
	"time"
)

// DestinoStatus is the editorial lifecycle state of a destination.
// Only published destinations are eligible for search and similarity.
type DestinoStatus string

const (
	StatusDraft         DestinoStatus = "draft"
	StatusPendingReview DestinoStatus = "pending_review"
	StatusPublished     DestinoStatus = "published"
	StatusRejected      DestinoStatus = "rejected"
)

// Destino is the read-only projection of a destination used by the search
// and similarity core. Associations are preloaded by the repository as
// summaries; the ID-set accessors below derive the sets the scorer needs.
type Destino struct {
	ID               int64         `json:"id"`
	Nombre           string        `json:"name"`
	Slug             string        `json:"slug"`
	Descripcion      string        `json:"description"`
	DescripcionCorta string        `json:"short_description"`
	Status           DestinoStatus `json:"status"`

	// RegionID is nil for destinations without an assigned region.
	RegionID *int64         `json:"region_id,omitempty"`
	Region   *RegionSummary `json:"region,omitempty"`

	Categorias      []CategoriaSummary      `json:"categories"`
	Caracteristicas []CaracteristicaSummary `json:"characteristics"`
	Tags            []TagSummary            `json:"tags,omitempty"`

	// Latitud and Longitud are nil when the destination has no coordinates.
	// Geo operations skip or exclude such destinations, never defaulting
	// them to distance zero or infinity.
	Latitud  *float64 `json:"latitude,omitempty"`
	Longitud *float64 `json:"longitude,omitempty"`

	AverageRating float64  `json:"average_rating"`
	ReviewsCount  int      `json:"reviews_count"`
	Precio        *float64 `json:"price,omitempty"`

	// IsTop marks curated flagship destinations; it contributes the
	// "Tipo de Destino" similarity factor.
	IsTop bool `json:"is_top"`

	// ImagenPrincipal is the URL of the first is_main image, if any.
	ImagenPrincipal *string `json:"main_image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (d *Destino) HasCoordinates() bool {
	return d.Latitud != nil && d.Longitud != nil
}

// CategoriaIDs returns the destination's category id set.
func (d *Destino) CategoriaIDs() []int64 {
	ids := make([]int64, len(d.Categorias))
	for i, c := range d.Categorias {
		ids[i] = c.ID
	}
	return ids
}

// CaracteristicaIDs returns the destination's characteristic id set.
func (d *Destino) CaracteristicaIDs() []int64 {
	ids := make([]int64, len(d.Caracteristicas))
	for i, c := range d.Caracteristicas {
		ids[i] = c.ID
	}
	return ids
}

// TagIDs returns the destination's tag id set.
func (d *Destino) TagIDs() []int64 {
	ids := make([]int64, len(d.Tags))
	for i, t := range d.Tags {
		ids[i] = t.ID
	}
	return ids
}

// RegionSummary is the id+name+slug projection of a region.
type RegionSummary struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Slug   string `json:"slug"`
}

// CategoriaSummary is the id+name+slug projection of a category.
type CategoriaSummary struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Slug   string `json:"slug"`
}

// CaracteristicaSummary is the id+name+slug projection of a characteristic.
type CaracteristicaSummary struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Slug   string `json:"slug"`
}

// TagSummary is the id+name+slug projection of a tag.
type TagSummary struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Slug   string `json:"slug"`
}
