// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

// Package main is the entry point for the Descubre API server.
//
// Descubre is a tourism destination directory for Mexico. The server
// exposes a read-only JSON API for browsing the published catalog,
// faceted search with geo filtering, name autocomplete, similarity
// recommendations and a landing page aggregation.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 (defaults, optional config.yaml, DESCUBRE_* env)
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB, schema creation and optional mock data seeding
//  4. Search service, similarity ranker and the in-memory TTL cache
//  5. HTTP server: Chi router under /api/v1 plus /metrics for Prometheus
//
// Graceful shutdown on SIGINT and SIGTERM: the server stops accepting
// connections, waits up to 10 seconds for in-flight requests, then
// closes the database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/descubre-mx/descubre/internal/api"
	"github.com/descubre-mx/descubre/internal/cache"
	"github.com/descubre-mx/descubre/internal/config"
	"github.com/descubre-mx/descubre/internal/database"
	"github.com/descubre-mx/descubre/internal/logging"
	"github.com/descubre-mx/descubre/internal/search"
	"github.com/descubre-mx/descubre/internal/similar"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Descubre")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	searcher := search.NewService(db, logging.Logger())
	ranker := similar.NewRanker(db, nil, logging.Logger())
	resultCache := cache.New(5 * time.Minute)

	handler := api.NewHandler(db, searcher, ranker, resultCache, cfg)
	router := api.NewRouter(handler, &cfg.Server)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
