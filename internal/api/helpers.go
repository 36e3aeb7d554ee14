// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/descubre-mx/descubre/internal/logging"
	"github.com/descubre-mx/descubre/internal/models"
	"github.com/descubre-mx/descubre/internal/validation"
)

// sanitizeLogValue removes control characters from strings so attacker
// controlled input cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error envelope.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidationError sends the detailed VALIDATION_ERROR envelope.
func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: apiErr,
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil on success or a models.APIError with the VALIDATION_ERROR code.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter with a default value.
// Unparseable input is an error, not a silent fall back to the default.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", key, value)
	}

	return intValue, nil
}

// getFloatPtr extracts an optional float query parameter. Returns nil
// when absent; unparseable input is an error.
func getFloatPtr(r *http.Request, key string) (*float64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number: %q", key, value)
	}

	return &f, nil
}

// getBoolPtr extracts an optional boolean query parameter. Returns nil
// when absent; unparseable input is an error.
func getBoolPtr(r *http.Request, key string) (*bool, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean: %q", key, value)
	}

	return &b, nil
}

// getBoolParam extracts a boolean query parameter with a default value.
func getBoolParam(r *http.Request, key string, defaultValue bool) (bool, error) {
	b, err := getBoolPtr(r, key)
	if err != nil {
		return false, err
	}
	if b != nil {
		return *b, nil
	}
	return defaultValue, nil
}

// respondBadParam reports a malformed query parameter.
func respondBadParam(w http.ResponseWriter, err error) {
	respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
}

// parseInt64List parses "1,2,3" into []int64. Non-numeric entries make
// the whole list invalid; blank entries from stray commas are skipped.
func parseInt64List(param, value string) ([]int64, error) {
	if value == "" {
		return nil, nil
	}

	var result []int64
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		num, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s contains a non-numeric id: %q", param, trimmed)
		}
		result = append(result, num)
	}
	return result, nil
}
