// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

// Package catalog owns the title, episode and watch-progress collections.
//
// The Storage interface is the seam between callers and the backing
// structure. MemoryStore is the runtime implementation; Query derives
// read-only views from any Storage.
//
// Title and episode lookups report absence with a boolean rather than an
// error. Create operations return *ValidationError or *NotFoundError, both
// of which also match the ErrValidation and ErrNotFound sentinels.
package catalog

import "github.com/cce459/AniLifeClone/internal/models"

// Storage is the catalog repository contract.
type Storage interface {
	// CreateTitle validates input, assigns an ID and creation time, and
	// inserts the title.
	CreateTitle(input models.TitleInput) (models.Title, error)

	// CreateEpisode inserts an episode for an existing title. Episode
	// numbers must be positive and unique within the title.
	CreateEpisode(input models.EpisodeInput) (models.Episode, error)

	GetTitle(id string) (models.Title, bool)

	// ListTitles returns every title in insertion order.
	ListTitles() []models.Title

	// GetEpisodesOf returns the title's episodes sorted by number.
	GetEpisodesOf(titleID string) []models.Episode

	GetEpisode(id string) (models.Episode, bool)

	// AppendProgress stores a watch progress record. The referenced title
	// and episode must exist and the episode must belong to the title.
	AppendProgress(record models.WatchProgress) error

	// ProgressFor returns every record for (viewerID, titleID) in append
	// order.
	ProgressFor(viewerID, titleID string) []models.WatchProgress

	Stats() Stats
}

// Stats summarises collection sizes.
type Stats struct {
	Titles   int `json:"titles"`
	Episodes int `json:"episodes"`
	Progress int `json:"progress"`
}
