// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package geo

import (
	"math"
	"testing"
)

func TestDistanceKmIdentity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{19.4326, -99.1332},
		{-33.4489, -70.6693},
		{89.9, 179.9},
		{-89.9, -179.9},
	}

	for _, p := range points {
		d := DistanceKm(p[0], p[1], p[0], p[1])
		if d != 0 {
			t.Errorf("DistanceKm(%v, %v, same) = %f, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{19.4326, -99.1332, 20.1011, -98.7591},
		{40.4168, -3.7038, 48.8566, 2.3522},
		{-34.6037, -58.3816, 51.5074, -0.1278},
	}

	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("DistanceKm not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestDistanceKmKnownFixture(t *testing.T) {
	// Mexico City to Pachuca, approximately 82 km great-circle.
	d := DistanceKm(19.4326, -99.1332, 20.1011, -98.7591)
	if d < 80 || d > 84 {
		t.Errorf("CDMX-Pachuca distance = %f, want 82 +/- 2", d)
	}
}

func TestRoundKm(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{82.4567, 82.46},
		{0.004, 0.0},
		{0.005, 0.01},
		{100.0, 100.0},
	}

	for _, tt := range tests {
		if got := RoundKm(tt.in); got != tt.want {
			t.Errorf("RoundKm(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestWithinRadius(t *testing.T) {
	// Center on Mexico City, 100km radius: Pachuca (~82km) is inside,
	// Guadalajara (~460km) is not.
	within := WithinRadius(19.4326, -99.1332, 100)

	if !within(20.1011, -98.7591) {
		t.Error("expected Pachuca to be within 100km of Mexico City")
	}
	if within(20.6597, -103.3496) {
		t.Error("expected Guadalajara to be outside 100km of Mexico City")
	}
}

func TestWithinRadiusBoundary(t *testing.T) {
	d := DistanceKm(19.4326, -99.1332, 20.1011, -98.7591)

	// The predicate is inclusive at exactly the computed distance.
	if !WithinRadius(19.4326, -99.1332, d)(20.1011, -98.7591) {
		t.Error("expected point at exactly radius distance to be within")
	}
	if WithinRadius(19.4326, -99.1332, d-0.01)(20.1011, -98.7591) {
		t.Error("expected point beyond radius to be excluded")
	}
}
