// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package models

import "time"

// HistoryEntry is one title in a viewer's watch history. Progress is the
// percentage of the title watched (0-100).
type HistoryEntry struct {
	TitleID   string    `json:"titleId" validate:"notblank"`
	WatchedAt time.Time `json:"watchedAt"`
	Progress  int       `json:"progress" validate:"gte=0,lte=100"`
	Completed bool      `json:"completed"`
}

// ViewerPreferences is a snapshot of everything stored for one viewer.
type ViewerPreferences struct {
	ViewerID   string         `json:"viewerId"`
	Favorites  []string       `json:"favorites"`
	WatchLater []string       `json:"watchLater"`
	History    []HistoryEntry `json:"history"`
}
