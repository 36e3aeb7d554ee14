// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps the library with a thread-safe singleton instance and translates
// failures into the API's VALIDATION_ERROR format so every endpoint rejects
// bad input the same way.
//
// # Quick Start
//
//	type NearbyRequest struct {
//	    Latitude  float64 `validate:"latitude"`
//	    Longitude float64 `validate:"longitude"`
//	    RadiusKm  float64 `validate:"gt=0,lte=500"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    req := parseNearby(r)
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	        return
//	    }
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// Numeric ranges:
//   - gte=n, lte=n, gt=n, lt=n
//   - min=n, max=n (length for strings, value for numbers)
//
// Enums:
//   - oneof=name rating price distance created_at
//
// Coordinates:
//   - latitude: valid latitude (-90 to 90)
//   - longitude: valid longitude (-180 to 180)
//
// # API Error Integration
//
// ToAPIError produces responses matching the application format:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Latitude must be a valid latitude (-90 to 90)",
//	    "details": {"field": "Latitude", "tag": "latitude", "value": 912.0}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Latitude: ...; RadiusKm: ...",
//	    "details": {"fields": [...]}
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
// It caches struct reflection metadata, so repeated validation of the same
// request types is cheap.
package validation
