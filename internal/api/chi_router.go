// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/descubre-mx/descubre/internal/config"
	"github.com/descubre-mx/descubre/internal/middleware"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler and server settings.
func NewRouter(h *Handler, cfg *config.ServerConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	if cfg != nil {
		if len(cfg.CORSOrigins) > 0 {
			mwConfig.CORSAllowedOrigins = cfg.CORSOrigins
		}
		if cfg.RateLimitReqs > 0 {
			mwConfig.RateLimitRequests = cfg.RateLimitReqs
		}
		if cfg.RateLimitWindow > 0 {
			mwConfig.RateLimitWindow = cfg.RateLimitWindow
		}
		mwConfig.RateLimitDisabled = cfg.RateLimitDisabled
	}

	return &Router{
		handler:       h,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so it can be used with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global stack, applied to every route. CORS must be global to
	// handle OPTIONS preflight.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints get permissive rate limiting so monitoring
	// probes never get throttled out.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Public data endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/home", router.handler.Home)
		r.Get("/stats", router.handler.Stats)

		r.Route("/destinos", func(r chi.Router) {
			r.Get("/", router.handler.ListDestinos)
			r.Get("/nearby", router.handler.Nearby)
			r.Get("/{slug}", router.handler.DestinoDetail)
			r.Get("/{slug}/similar", router.handler.Similar)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/advanced", router.handler.AdvancedSearch)
			r.Get("/autocomplete", router.handler.Autocomplete)
			r.Get("/filters", router.handler.Filters)
		})
	})

	// Prometheus scrape endpoint, outside the API rate limit.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
