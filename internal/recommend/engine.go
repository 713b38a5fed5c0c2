// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/metrics"
	"github.com/cce459/AniLifeClone/internal/models"
	"github.com/cce459/AniLifeClone/internal/preferences"
)

// TitleSource lists catalog titles in insertion order.
type TitleSource interface {
	ListTitles() []models.Title
}

// Engine loads a viewer's preferences and the live catalog and ranks them
// with Rank. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	titles TitleSource
	prefs  preferences.Store
	config Config
	logger zerolog.Logger
}

// NewEngine creates an Engine. An invalid cfg is replaced by DefaultConfig.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(titles TitleSource, prefs preferences.Store, cfg Config, logger zerolog.Logger) *Engine {
	l := logger.With().Str("component", "recommend").Logger()
	if err := cfg.Validate(); err != nil {
		l.Warn().Err(err).Msg("Invalid recommendation config, using defaults")
		cfg = DefaultConfig()
	}
	return &Engine{titles: titles, prefs: prefs, config: cfg, logger: l}
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Recommend ranks the catalog for req.ViewerID.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	if strings.TrimSpace(req.ViewerID) == "" {
		return nil, catalog.NewValidationError("viewerId", "viewerId is required")
	}

	snap, err := e.prefs.Snapshot(ctx, req.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	history := make([]string, len(snap.History))
	for i, h := range snap.History {
		history[i] = h.TitleID
	}

	result := Rank(e.titles.ListTitles(), snap.Favorites, history, e.config)
	metrics.RecordRecommendation(result.ColdStart, len(result.Titles))

	resp := &Response{
		Titles: result.Titles,
		Metadata: ResponseMetadata{
			RequestID:       uuid.New().String(),
			ViewerID:        req.ViewerID,
			ColdStart:       result.ColdStart,
			PreferredGenres: result.PreferredGenres,
			Backfilled:      result.Backfilled,
			LatencyMS:       time.Since(start).Milliseconds(),
			GeneratedAt:     time.Now().UTC(),
		},
	}

	e.logger.Debug().
		Str("request_id", resp.Metadata.RequestID).
		Str("viewer_id", req.ViewerID).
		Bool("cold_start", result.ColdStart).
		Strs("genres", result.PreferredGenres).
		Int("count", len(result.Titles)).
		Int("backfilled", result.Backfilled).
		Msg("Recommendations generated")

	return resp, nil
}
