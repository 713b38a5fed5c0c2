// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Catalog     CatalogConfig     `koanf:"catalog"`
	Preferences PreferencesConfig `koanf:"preferences"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Events      EventsConfig      `koanf:"events"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig controls the in-memory catalog.
type CatalogConfig struct {
	// Seed loads the built-in fixture titles at startup.
	Seed bool `koanf:"seed"`
}

// PreferencesConfig selects the viewer preference backend.
//
// Environment Variables:
//   - PREFERENCES_BACKEND: "memory" (default) or "badger"
//   - PREFERENCES_PATH: BadgerDB directory (required when backend=badger)
//   - PREFERENCES_IN_MEMORY: run badger without touching disk
//   - HISTORY_LIMIT: maximum watch-history entries per viewer (default: 50)
type PreferencesConfig struct {
	Backend      string `koanf:"backend"`
	Path         string `koanf:"path"`
	InMemory     bool   `koanf:"in_memory"`
	HistoryLimit int    `koanf:"history_limit"`
}

// RecommendConfig tunes the genre recommendation engine.
type RecommendConfig struct {
	Limit         int `koanf:"limit"`          // warm-start output size (default: 6)
	ColdLimit     int `koanf:"cold_limit"`     // cold-start output size (default: 8)
	HistoryWindow int `koanf:"history_window"` // recent history entries used for genres (default: 5)
}

// EventsConfig holds in-process event bus settings.
type EventsConfig struct {
	Enabled          bool          `koanf:"enabled"`
	BufferSize       int64         `koanf:"buffer_size"`
	CloseTimeout     time.Duration `koanf:"close_timeout"`
	RetryMaxRetries  int           `koanf:"retry_max_retries"`
	RetryInterval    time.Duration `koanf:"retry_interval"`
	BreakerThreshold uint32        `koanf:"breaker_threshold"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using the layered koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
