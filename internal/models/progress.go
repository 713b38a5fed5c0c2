// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package models

import "time"

// WatchProgress is one immutable fact about a viewer's consumption of an
// episode. Records are appended, never updated; the current state for an
// episode is the most recently created record.
type WatchProgress struct {
	ID              string    `json:"id"`
	TitleID         string    `json:"titleId"`
	EpisodeID       string    `json:"episodeId"`
	ViewerID        string    `json:"viewerId"`
	ProgressSeconds int       `json:"progressSeconds"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProgressInput is a record-progress request. ProgressSeconds and Completed
// are optional and default to 0 and false.
type ProgressInput struct {
	TitleID         string `json:"titleId" validate:"notblank"`
	EpisodeID       string `json:"episodeId" validate:"notblank"`
	ViewerID        string `json:"viewerId" validate:"notblank"`
	ProgressSeconds *int   `json:"progressSeconds,omitempty" validate:"omitempty,gte=0"`
	Completed       *bool  `json:"completed,omitempty"`
}
