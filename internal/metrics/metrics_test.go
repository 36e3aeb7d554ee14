// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/stats", "200"))

	RecordAPIRequest("GET", "/api/v1/stats", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/stats", "200"))
	if after != before+1 {
		t.Errorf("expected counter to increment by 1, got %f -> %f", before, after)
	}
}

func TestRecordDBQueryError(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("search"))

	RecordDBQuery("search", 10*time.Millisecond, errors.New("boom"))
	RecordDBQuery("search", 10*time.Millisecond, nil)

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("search"))
	if after != before+1 {
		t.Errorf("expected 1 error recorded, got %f -> %f", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected gauge %f, got %f", before+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected gauge %f, got %f", before, got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("home"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("home"))

	RecordCacheLookup("home", true)
	RecordCacheLookup("home", false)
	RecordCacheLookup("home", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("home")); got != hitsBefore+1 {
		t.Errorf("expected 1 hit recorded, got %f", got-hitsBefore)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("home")); got != missesBefore+2 {
		t.Errorf("expected 2 misses recorded, got %f", got-missesBefore)
	}
}
