// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/descubre-mx/descubre/internal/cache"
	"github.com/descubre-mx/descubre/internal/config"
	"github.com/descubre-mx/descubre/internal/database"
	"github.com/descubre-mx/descubre/internal/models"
	"github.com/descubre-mx/descubre/internal/search"
	"github.com/descubre-mx/descubre/internal/similar"
)

func floatPtr(f float64) *float64 { return &f }

func publishedDestino(id int64, slug string) *models.Destino {
	return &models.Destino{
		ID:            id,
		Nombre:        "Destino " + slug,
		Slug:          slug,
		Status:        models.StatusPublished,
		AverageRating: 4.5,
	}
}

type mockStore struct {
	destinos  map[string]*models.Destino
	sections  map[database.Section][]models.Destino
	nearby    []models.Destino
	nearbyGot *database.NearbyFilters
	suggests  []models.AutocompleteSuggestion
	facets    *models.FiltersResponse
	stats     *models.StatsResponse
	pingErr   error
}

func (m *mockStore) GetDestinoBySlug(_ context.Context, slug string) (*models.Destino, error) {
	d, ok := m.destinos[slug]
	if !ok {
		return nil, database.ErrNotFound
	}
	return d, nil
}

func (m *mockStore) ListDestinos(_ context.Context, section database.Section, limit int) ([]models.Destino, error) {
	out := m.sections[section]
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockStore) NearbyCandidates(_ context.Context, f database.NearbyFilters) ([]models.Destino, error) {
	m.nearbyGot = &f
	return m.nearby, nil
}

func (m *mockStore) Autocomplete(_ context.Context, _ string, _ int) ([]models.AutocompleteSuggestion, error) {
	return m.suggests, nil
}

func (m *mockStore) FilterFacets(_ context.Context) (*models.FiltersResponse, error) {
	if m.facets == nil {
		return &models.FiltersResponse{}, nil
	}
	return m.facets, nil
}

func (m *mockStore) GetStats(_ context.Context) (*models.StatsResponse, error) {
	if m.stats == nil {
		return &models.StatsResponse{}, nil
	}
	return m.stats, nil
}

func (m *mockStore) Ping(_ context.Context) error { return m.pingErr }

type mockSearcher struct {
	calls int
	resp  *models.AdvancedSearchResponse
	err   error
	got   *search.FilterSet
}

func (m *mockSearcher) Search(_ context.Context, f *search.FilterSet) (*models.AdvancedSearchResponse, error) {
	m.calls++
	m.got = f
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type mockRanker struct {
	results   []models.DestinoSimilar
	evaluated int
	err       error
	gotOpts   similar.Options
}

func (m *mockRanker) FindSimilar(_ context.Context, _ *models.Destino, opts similar.Options) ([]models.DestinoSimilar, int, error) {
	m.gotOpts = opts
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.results, m.evaluated, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:              "127.0.0.1",
			Port:              8080,
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		Cache: config.CacheConfig{
			AutocompleteTTL:   5 * time.Minute,
			FiltersTTL:        5 * time.Minute,
			AdvancedSearchTTL: 5 * time.Minute,
			HomeTTL:           time.Hour,
			SectionsTTL:       5 * time.Minute,
			StatsTTL:          10 * time.Minute,
		},
		Search: config.SearchConfig{
			DefaultPerPage: 15,
			MaxPerPage:     100,
			MaxRadiusKm:    500,
		},
		Similar: config.SimilarConfig{
			DefaultLimit:    6,
			MaxLimit:        20,
			DefaultMinScore: 0.1,
		},
	}
}

type testEnv struct {
	store    *mockStore
	searcher *mockSearcher
	ranker   *mockRanker
	handler  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := &mockStore{
		destinos: map[string]*models.Destino{},
		sections: map[database.Section][]models.Destino{},
	}
	searcher := &mockSearcher{
		resp: &models.AdvancedSearchResponse{
			Destinos:       []models.DestinoResult{},
			FiltersApplied: map[string]interface{}{},
		},
	}
	ranker := &mockRanker{}

	cfg := testConfig()
	c := cache.New(time.Minute)
	t.Cleanup(c.Clear)

	h := NewHandler(store, searcher, ranker, c, cfg)
	router := NewRouter(h, &cfg.Server)

	return &testEnv{
		store:    store,
		searcher: searcher,
		ranker:   ranker,
		handler:  router.SetupChi(),
	}
}

func (e *testEnv) get(t *testing.T, path string) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response for %s: %v (body %q)", path, err, rec.Body.String())
	}
	return rec, &resp
}

func TestDestinoDetail(t *testing.T) {
	env := newTestEnv(t)
	env.store.destinos["tulum"] = publishedDestino(2, "tulum")

	rec, resp := env.get(t, "/api/v1/destinos/tulum")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("envelope status = %q, want success", resp.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestDestinoDetailNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.get(t, "/api/v1/destinos/no-such-place")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", resp.Error)
	}
}

func TestDestinoDetailUnpublishedHidden(t *testing.T) {
	env := newTestEnv(t)
	draft := publishedDestino(9, "mercado-secreto")
	draft.Status = models.StatusDraft
	env.store.destinos["mercado-secreto"] = draft

	rec, _ := env.get(t, "/api/v1/destinos/mercado-secreto")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for draft destination", rec.Code)
	}
}

func TestListDestinosInvalidSection(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.get(t, "/api/v1/destinos?section=bogus")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestListDestinosDefaultsToTop(t *testing.T) {
	env := newTestEnv(t)
	env.store.sections[database.SectionTop] = []models.Destino{*publishedDestino(1, "bacalar")}

	rec, resp := env.get(t, "/api/v1/destinos")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	results, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data type = %T, want array", resp.Data)
	}
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestAdvancedSearchValidation(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.get(t, "/api/v1/search/advanced?sort_by=bogus")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
	if env.searcher.calls != 0 {
		t.Errorf("searcher called %d times on invalid input", env.searcher.calls)
	}
}

func TestAdvancedSearchPassesFilters(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.get(t, "/api/v1/search/advanced?categorias=1,2&regiones=3&rating_min=4.0&is_top=true&page=2&per_page=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	f := env.searcher.got
	if f == nil {
		t.Fatal("searcher never called")
	}
	if len(f.Categorias) != 2 || f.Categorias[0] != 1 || f.Categorias[1] != 2 {
		t.Errorf("categorias = %v, want [1 2]", f.Categorias)
	}
	if len(f.Regiones) != 1 || f.Regiones[0] != 3 {
		t.Errorf("regiones = %v, want [3]", f.Regiones)
	}
	if f.RatingMin == nil || *f.RatingMin != 4.0 {
		t.Errorf("rating_min = %v, want 4.0", f.RatingMin)
	}
	if f.IsTop == nil || !*f.IsTop {
		t.Errorf("is_top = %v, want true", f.IsTop)
	}
	if f.Page != 2 || f.PerPage != 10 {
		t.Errorf("pagination = %d/%d, want 2/10", f.Page, f.PerPage)
	}
}

func TestAdvancedSearchCacheHit(t *testing.T) {
	env := newTestEnv(t)

	_, first := env.get(t, "/api/v1/search/advanced?query=cenote")
	if first.Metadata.Cached {
		t.Error("first request reported cached")
	}

	_, second := env.get(t, "/api/v1/search/advanced?query=cenote")
	if !second.Metadata.Cached {
		t.Error("second request did not report cached")
	}
	if env.searcher.calls != 1 {
		t.Errorf("searcher calls = %d, want 1", env.searcher.calls)
	}

	data, ok := second.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want object", second.Data)
	}
	stats, ok := data["search_stats"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing search_stats in %v", data)
	}
	if hit, _ := stats["cache_hit"].(bool); !hit {
		t.Error("search_stats.cache_hit = false on cached response")
	}
}

func TestAdvancedSearchRadiusTooLarge(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.get(t, "/api/v1/search/advanced?lat=19.4&lng=-99.1&distancia_max=9000")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for oversized radius", rec.Code)
	}
}

func TestAdvancedSearchMalformedIDList(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.get(t, "/api/v1/search/advanced?categorias=1,playa,3")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for non-numeric id", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
	if env.searcher.calls != 0 {
		t.Errorf("searcher called %d times on malformed input", env.searcher.calls)
	}
}

func TestUnparseableParamsRejected(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		path string
	}{
		{"non-numeric lat", "/api/v1/search/advanced?lat=abc&lng=-99.1"},
		{"non-numeric precio_min", "/api/v1/search/advanced?precio_min=x"},
		{"non-boolean is_top", "/api/v1/search/advanced?is_top=maybe"},
		{"non-integer page", "/api/v1/search/advanced?page=two"},
		{"non-integer autocomplete limit", "/api/v1/search/autocomplete?query=tul&limit=many"},
		{"non-numeric min_score", "/api/v1/destinos/tulum/similar?min_score=high"},
		{"non-boolean include_region", "/api/v1/destinos/tulum/similar?include_region=quizas"},
		{"non-integer category_id", "/api/v1/destinos/nearby?latitude=19.4&longitude=-99.1&radius=50&category_id=playa"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := env.get(t, tc.path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
			}
		})
	}

	if env.searcher.calls != 0 {
		t.Errorf("searcher called %d times on malformed input", env.searcher.calls)
	}
}

func TestAdvancedSearchInvertedPriceRange(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.get(t, "/api/v1/search/advanced?precio_min=500&precio_max=100")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for inverted price range", rec.Code)
	}
}

func TestAdvancedSearchError(t *testing.T) {
	env := newTestEnv(t)
	env.searcher.err = errors.New("boom")

	rec, resp := env.get(t, "/api/v1/search/advanced")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "DATABASE_ERROR" {
		t.Errorf("error = %+v, want DATABASE_ERROR", resp.Error)
	}
}

func TestAutocompleteRequiresQuery(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.get(t, "/api/v1/search/autocomplete")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestAutocomplete(t *testing.T) {
	env := newTestEnv(t)
	env.store.suggests = []models.AutocompleteSuggestion{
		{ID: 2, Nombre: "Tulum", Slug: "tulum"},
	}

	rec, resp := env.get(t, "/api/v1/search/autocomplete?query=tul")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	results, ok := resp.Data.([]interface{})
	if !ok || len(results) != 1 {
		t.Fatalf("data = %v, want one suggestion", resp.Data)
	}
}

func TestSimilarInvalidOptions(t *testing.T) {
	env := newTestEnv(t)
	env.store.destinos["tulum"] = publishedDestino(2, "tulum")

	rec, _ := env.get(t, "/api/v1/destinos/tulum/similar?limit=50")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for limit over max", rec.Code)
	}
}

func TestSimilarSlugNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.get(t, "/api/v1/destinos/atlantis/similar")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSimilar(t *testing.T) {
	env := newTestEnv(t)
	env.store.destinos["tulum"] = publishedDestino(2, "tulum")
	env.ranker.results = []models.DestinoSimilar{
		{ID: 5, Nombre: "Bacalar", Slug: "bacalar", Score: 0.62, Factors: []string{"Región", "Categoría"}},
	}
	env.ranker.evaluated = 7

	rec, resp := env.get(t, "/api/v1/destinos/tulum/similar?limit=3&min_score=0.5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.ranker.gotOpts.Limit != 3 {
		t.Errorf("limit = %d, want 3", env.ranker.gotOpts.Limit)
	}
	if env.ranker.gotOpts.MinScore != 0.5 {
		t.Errorf("min_score = %g, want 0.5", env.ranker.gotOpts.MinScore)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want object", resp.Data)
	}
	stats, ok := data["stats"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing stats in %v", data)
	}
	if n, _ := stats["candidates_evaluated"].(float64); int(n) != 7 {
		t.Errorf("candidates_evaluated = %v, want 7", stats["candidates_evaluated"])
	}
	if n, _ := stats["returned"].(float64); int(n) != 1 {
		t.Errorf("returned = %v, want 1", stats["returned"])
	}
}

func TestNearbyValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		path string
	}{
		{"missing coordinates", "/api/v1/destinos/nearby?radius=50"},
		{"latitude out of range", "/api/v1/destinos/nearby?latitude=123&longitude=-99&radius=50"},
		{"non-numeric latitude", "/api/v1/destinos/nearby?latitude=abc&longitude=-99&radius=50"},
		{"zero radius", "/api/v1/destinos/nearby?latitude=19.4&longitude=-99.1&radius=0"},
		{"radius over max", "/api/v1/destinos/nearby?latitude=19.4&longitude=-99.1&radius=1000"},
		{"min_rating out of range", "/api/v1/destinos/nearby?latitude=19.4&longitude=-99.1&radius=50&min_rating=0.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := env.get(t, tc.path)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestNearby(t *testing.T) {
	env := newTestEnv(t)

	near := publishedDestino(1, "teotihuacan")
	near.Latitud = floatPtr(19.6925)
	near.Longitud = floatPtr(-98.8439)
	far := publishedDestino(2, "tulum")
	far.Latitud = floatPtr(20.2114)
	far.Longitud = floatPtr(-87.4654)
	env.store.nearby = []models.Destino{*near, *far}

	// Center on Mexico City: Teotihuacan is ~40km away, Tulum ~1200km.
	rec, resp := env.get(t, "/api/v1/destinos/nearby?latitude=19.4326&longitude=-99.1332&radius=100&min_rating=4.0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if env.store.nearbyGot == nil || env.store.nearbyGot.MinRating == nil || *env.store.nearbyGot.MinRating != 4.0 {
		t.Errorf("rating_min filter not forwarded: %+v", env.store.nearbyGot)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want object", resp.Data)
	}
	dests, ok := data["destinations"].([]interface{})
	if !ok || len(dests) != 1 {
		t.Fatalf("destinations = %v, want exactly the one inside the radius", data["destinations"])
	}
	if n, _ := data["total_found"].(float64); int(n) != 1 {
		t.Errorf("total_found = %v, want 1", data["total_found"])
	}
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)
	env.store.sections[database.SectionTop] = []models.Destino{*publishedDestino(1, "bacalar")}
	env.store.sections[database.SectionRecent] = []models.Destino{*publishedDestino(2, "tulum")}
	env.store.facets = &models.FiltersResponse{
		Regiones: []models.FacetEntry{{ID: 1, Nombre: "Riviera Maya", Slug: "riviera-maya", Count: 3}},
	}

	rec, resp := env.get(t, "/api/v1/home")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want object", resp.Data)
	}
	for _, key := range []string{"top_destinos", "recent_destinos", "regiones"} {
		if _, ok := data[key]; !ok {
			t.Errorf("home response missing %q", key)
		}
	}

	_, again := env.get(t, "/api/v1/home")
	if !again.Metadata.Cached {
		t.Error("second home request did not report cached")
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.store.stats = &models.StatsResponse{
		TotalDestinos: 8,
		TotalRegiones: 4,
		AverageRating: 4.63,
	}

	rec, resp := env.get(t, "/api/v1/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want object", resp.Data)
	}
	if n, _ := data["total_destinos"].(float64); int(n) != 8 {
		t.Errorf("total_destinos = %v, want 8", data["total_destinos"])
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	env := newTestEnv(t)
	env.store.pingErr = errors.New("connection refused")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.get(t, "/api/v1/stats")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}
