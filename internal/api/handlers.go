// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

// Package api exposes the catalog, progress, viewer preference and
// recommendation operations over HTTP using the Chi router.
//
// Every response uses the models.APIResponse envelope. Domain errors map to
// 400 (validation), 404 (not found) and 500 (anything else).
package api

import (
	"time"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/preferences"
	"github.com/cce459/AniLifeClone/internal/progress"
	"github.com/cce459/AniLifeClone/internal/recommend"
)

// MinSearchLength is the shortest accepted trimmed search query.
const MinSearchLength = 2

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func() error

// Dependencies groups what the handlers need.
type Dependencies struct {
	Store       catalog.Storage
	Tracker     *progress.Tracker
	Preferences preferences.Store
	Recommender *recommend.Engine
	Version     string

	// Checks run on /health and /health/ready, keyed by component name.
	Checks map[string]ReadinessCheck
}

// Handler implements the HTTP endpoints.
type Handler struct {
	store     catalog.Storage
	query     *catalog.Query
	tracker   *progress.Tracker
	prefs     preferences.Store
	engine    *recommend.Engine
	version   string
	checks    map[string]ReadinessCheck
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		store:     deps.Store,
		query:     catalog.NewQuery(deps.Store),
		tracker:   deps.Tracker,
		prefs:     deps.Preferences,
		engine:    deps.Recommender,
		version:   version,
		checks:    deps.Checks,
		startTime: time.Now(),
	}
}
