// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package config

import (
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:5000", cfg.Server.Addr())
	}
	if !cfg.Catalog.Seed {
		t.Error("Catalog.Seed should be true by default")
	}
	if cfg.Preferences.Backend != "memory" {
		t.Errorf("Preferences.Backend = %q, want memory", cfg.Preferences.Backend)
	}
	if cfg.Preferences.HistoryLimit != 50 {
		t.Errorf("Preferences.HistoryLimit = %d, want 50", cfg.Preferences.HistoryLimit)
	}
	if cfg.Recommend.Limit != 6 || cfg.Recommend.ColdLimit != 8 || cfg.Recommend.HistoryWindow != 5 {
		t.Errorf("Recommend = %+v, want limit 6, cold 8, window 5", cfg.Recommend)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"unknown backend", func(c *Config) { c.Preferences.Backend = "redis" }, "PREFERENCES_BACKEND"},
		{"badger without path", func(c *Config) {
			c.Preferences.Backend = "badger"
			c.Preferences.Path = ""
		}, "PREFERENCES_PATH"},
		{"badger in memory without path", func(c *Config) {
			c.Preferences.Backend = "badger"
			c.Preferences.Path = ""
			c.Preferences.InMemory = true
		}, ""},
		{"zero history limit", func(c *Config) { c.Preferences.HistoryLimit = 0 }, "HISTORY_LIMIT"},
		{"zero recommend limit", func(c *Config) { c.Recommend.Limit = 0 }, "RECOMMEND_LIMIT"},
		{"zero breaker threshold", func(c *Config) { c.Events.BreakerThreshold = 0 }, "EVENTS_BREAKER_THRESHOLD"},
		{"events disabled skips checks", func(c *Config) {
			c.Events.Enabled = false
			c.Events.BreakerThreshold = 0
		}, ""},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
