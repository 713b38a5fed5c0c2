// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package recommend

import (
	"time"

	"github.com/cce459/AniLifeClone/internal/models"
)

// Result is the output of Rank.
type Result struct {
	// Titles in recommendation order. Never nil.
	Titles []models.Title

	// ColdStart is set when no preferred genre could be derived.
	ColdStart bool

	// PreferredGenres in first-seen order: favorites, then history.
	PreferredGenres []string

	// Backfilled counts titles added by the rating fallback.
	Backfilled int
}

// Request asks for recommendations for one viewer.
type Request struct {
	ViewerID string `json:"viewer_id"`
}

// Response is returned by Engine.Recommend.
type Response struct {
	Titles   []models.Title   `json:"titles"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id"`
	ViewerID        string    `json:"viewer_id"`
	ColdStart       bool      `json:"cold_start"`
	PreferredGenres []string  `json:"preferred_genres"`
	Backfilled      int       `json:"backfilled"`
	LatencyMS       int64     `json:"latency_ms"`
	GeneratedAt     time.Time `json:"generated_at"`
}
