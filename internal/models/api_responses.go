// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses, with metadata for observability and caching.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"destinos": [...], "pagination": {...}},
//	  "metadata": {
//	    "timestamp": "2026-08-29T12:00:00Z",
//	    "query_time_ms": 12,
//	    "cached": false
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
// QueryTimeMS is 0 and Cached is true when the response was served from
// the result cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error payload.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: resource doesn't exist or is not published
//   - DATABASE_ERROR: query execution failure
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
