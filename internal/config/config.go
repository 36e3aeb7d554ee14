// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

// Package config loads layered application configuration:
// built-in defaults, an optional YAML file, then DESCUBRE_* environment
// variables, with environment taking the highest precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Search   SearchConfig   `koanf:"search"`
	Similar  SimilarConfig  `koanf:"similar"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	Environment       string        `koanf:"environment"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// CacheConfig holds per-endpoint result cache TTLs. Expensive aggregate
// endpoints cache longer than request-shaped ones.
type CacheConfig struct {
	AutocompleteTTL   time.Duration `koanf:"autocomplete_ttl"`
	FiltersTTL        time.Duration `koanf:"filters_ttl"`
	AdvancedSearchTTL time.Duration `koanf:"advanced_search_ttl"`
	HomeTTL           time.Duration `koanf:"home_ttl"`
	SectionsTTL       time.Duration `koanf:"sections_ttl"`
	StatsTTL          time.Duration `koanf:"stats_ttl"`
}

// SearchConfig holds pagination and geo search bounds.
type SearchConfig struct {
	DefaultPerPage int     `koanf:"default_per_page"`
	MaxPerPage     int     `koanf:"max_per_page"`
	MaxRadiusKm    float64 `koanf:"max_radius_km"`
}

// SimilarConfig holds similarity ranking defaults.
type SimilarConfig struct {
	DefaultLimit    int     `koanf:"default_limit"`
	MaxLimit        int     `koanf:"max_limit"`
	DefaultMinScore float64 `koanf:"default_min_score"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults load
// first and are overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Timeout:           30 * time.Second,
			Environment:       "development",
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Database: DatabaseConfig{
			Path:         "/data/descubre.duckdb",
			MaxMemory:    "2GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			SeedMockData: false,
		},
		Cache: CacheConfig{
			AutocompleteTTL:   300 * time.Second,
			FiltersTTL:        300 * time.Second,
			AdvancedSearchTTL: 300 * time.Second,
			HomeTTL:           3600 * time.Second,
			SectionsTTL:       300 * time.Second,
			StatsTTL:          600 * time.Second,
		},
		Search: SearchConfig{
			DefaultPerPage: 15,
			MaxPerPage:     100,
			MaxRadiusKm:    500,
		},
		Similar: SimilarConfig{
			DefaultLimit:    6,
			MaxLimit:        20,
			DefaultMinScore: 0.1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values that would misbehave at
// runtime. Called by Load after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	ttls := map[string]time.Duration{
		"cache.autocomplete_ttl":    c.Cache.AutocompleteTTL,
		"cache.filters_ttl":         c.Cache.FiltersTTL,
		"cache.advanced_search_ttl": c.Cache.AdvancedSearchTTL,
		"cache.home_ttl":            c.Cache.HomeTTL,
		"cache.sections_ttl":        c.Cache.SectionsTTL,
		"cache.stats_ttl":           c.Cache.StatsTTL,
	}
	for name, ttl := range ttls {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, ttl)
		}
	}

	if c.Search.DefaultPerPage < 1 {
		return fmt.Errorf("search.default_per_page must be at least 1, got %d", c.Search.DefaultPerPage)
	}
	if c.Search.MaxPerPage < c.Search.DefaultPerPage {
		return fmt.Errorf("search.max_per_page (%d) must be >= search.default_per_page (%d)",
			c.Search.MaxPerPage, c.Search.DefaultPerPage)
	}
	if c.Search.MaxRadiusKm <= 0 {
		return fmt.Errorf("search.max_radius_km must be positive, got %f", c.Search.MaxRadiusKm)
	}

	if c.Similar.DefaultLimit < 1 || c.Similar.DefaultLimit > c.Similar.MaxLimit {
		return fmt.Errorf("similar.default_limit must be between 1 and %d, got %d",
			c.Similar.MaxLimit, c.Similar.DefaultLimit)
	}
	if c.Similar.DefaultMinScore < 0.1 || c.Similar.DefaultMinScore > 1.0 {
		return fmt.Errorf("similar.default_min_score must be between 0.1 and 1.0, got %f",
			c.Similar.DefaultMinScore)
	}

	return nil
}
