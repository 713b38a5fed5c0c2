// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package config

import (
	"fmt"
	"strings"
)

// Validate checks that configuration values are consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validatePreferences(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validatePreferences() error {
	switch c.Preferences.Backend {
	case "memory":
	case "badger":
		if c.Preferences.Path == "" && !c.Preferences.InMemory {
			return fmt.Errorf("PREFERENCES_PATH is required when PREFERENCES_BACKEND=badger")
		}
	default:
		return fmt.Errorf("PREFERENCES_BACKEND must be 'memory' or 'badger', got %q", c.Preferences.Backend)
	}
	if c.Preferences.HistoryLimit < 1 {
		return fmt.Errorf("HISTORY_LIMIT must be at least 1, got %d", c.Preferences.HistoryLimit)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.Limit < 1 {
		return fmt.Errorf("RECOMMEND_LIMIT must be at least 1, got %d", c.Recommend.Limit)
	}
	if c.Recommend.ColdLimit < 1 {
		return fmt.Errorf("RECOMMEND_COLD_LIMIT must be at least 1, got %d", c.Recommend.ColdLimit)
	}
	if c.Recommend.HistoryWindow < 0 {
		return fmt.Errorf("RECOMMEND_HISTORY_WINDOW must not be negative, got %d", c.Recommend.HistoryWindow)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must not be negative, got %d", c.Events.BufferSize)
	}
	if c.Events.RetryMaxRetries < 0 {
		return fmt.Errorf("EVENTS_RETRY_MAX_RETRIES must not be negative, got %d", c.Events.RetryMaxRetries)
	}
	if c.Events.BreakerThreshold == 0 {
		return fmt.Errorf("EVENTS_BREAKER_THRESHOLD must be at least 1")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
