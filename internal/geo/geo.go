// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

// Package geo computes great-circle distances between coordinates and
// provides radius predicates for proximity filtering.
//
// All functions are pure and deterministic. Callers are responsible for
// validating coordinate ranges (-90..90 latitude, -180..180 longitude);
// this package assumes valid numeric input.
package geo

import (
	"math"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DistanceKm calculates the great-circle distance between two points
// using the haversine formula. Returns distance in kilometers.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lng1Rad := lng1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lng2Rad := lng2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLng := lng2Rad - lng1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// RoundKm rounds a distance to 2 decimals for display. The rounded value
// must come from the same computation used for filtering and sorting so
// clients never see a distance that contradicts the result set.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// WithinRadius returns a predicate reporting whether a point lies within
// radiusKm of the given center. Destinations without coordinates must be
// excluded by the caller before applying the predicate.
func WithinRadius(centerLat, centerLng, radiusKm float64) func(lat, lng float64) bool {
	return func(lat, lng float64) bool {
		return DistanceKm(centerLat, centerLng, lat, lng) <= radiusKm
	}
}
