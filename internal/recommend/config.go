// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package recommend

import "fmt"

// Config holds the list sizes used by Rank.
type Config struct {
	// Limit caps genre-based results and is the backfill target. Default: 6.
	Limit int `json:"limit"`

	// ColdLimit caps cold-start results. Default: 8.
	ColdLimit int `json:"cold_limit"`

	// HistoryWindow is how many recent history entries contribute
	// genres. Default: 5.
	HistoryWindow int `json:"history_window"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Limit:         6,
		ColdLimit:     8,
		HistoryWindow: 5,
	}
}

// Validate checks that every size is usable.
func (c Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.ColdLimit <= 0 {
		return fmt.Errorf("cold_limit must be positive, got %d", c.ColdLimit)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("history_window must not be negative, got %d", c.HistoryWindow)
	}
	return nil
}
