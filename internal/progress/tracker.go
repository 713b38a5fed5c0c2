// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

// Package progress records viewer watch progress against the catalog.
//
// The Tracker is the only writer of WatchProgress. Every call appends a new
// record; earlier records for the same episode are kept. Use Latest to
// collapse a record list to the most recent entry per episode.
package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/events"
	"github.com/cce459/AniLifeClone/internal/logging"
	"github.com/cce459/AniLifeClone/internal/metrics"
	"github.com/cce459/AniLifeClone/internal/models"
	"github.com/cce459/AniLifeClone/internal/validation"
)

// EventPublisher receives an event for every appended record.
type EventPublisher interface {
	PublishProgressRecorded(ctx context.Context, event events.ProgressRecorded) error
}

// Tracker validates and appends watch progress.
type Tracker struct {
	store     catalog.Storage
	publisher EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewTracker creates a Tracker. publisher may be nil when the event bus is
// disabled.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTracker(store catalog.Storage, publisher EventPublisher, logger zerolog.Logger) *Tracker {
	return &Tracker{
		store:     store,
		publisher: publisher,
		logger:    logger.With().Str("component", "progress").Logger(),
		now:       time.Now,
	}
}

// RecordProgress appends a record for input. Missing progress seconds and
// completion default to 0 and false.
func (t *Tracker) RecordProgress(ctx context.Context, input models.ProgressInput) (models.WatchProgress, error) {
	if verr := validation.ValidateStruct(&input); verr != nil {
		return models.WatchProgress{}, catalog.FromValidation(verr)
	}

	title, ok := t.store.GetTitle(input.TitleID)
	if !ok {
		return models.WatchProgress{}, catalog.NewNotFoundError("title", input.TitleID)
	}
	episode, ok := t.store.GetEpisode(input.EpisodeID)
	if !ok || episode.TitleID != title.ID {
		return models.WatchProgress{}, catalog.NewNotFoundError("episode", input.EpisodeID)
	}

	now := t.now()
	record := models.WatchProgress{
		ID:              uuid.New().String(),
		TitleID:         input.TitleID,
		EpisodeID:       input.EpisodeID,
		ViewerID:        input.ViewerID,
		ProgressSeconds: models.IntValue(input.ProgressSeconds),
		Completed:       models.BoolValue(input.Completed),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := t.store.AppendProgress(record); err != nil {
		return models.WatchProgress{}, err
	}
	metrics.RecordProgress(record.Completed)

	log := logging.Ctx(ctx)
	log.Debug().
		Str("viewer_id", record.ViewerID).
		Str("title_id", record.TitleID).
		Int("episode", episode.Number).
		Int("seconds", record.ProgressSeconds).
		Bool("completed", record.Completed).
		Msg("Progress recorded")

	if t.publisher != nil {
		event := events.NewProgressRecorded(record, title, episode)
		if err := t.publisher.PublishProgressRecorded(ctx, event); err != nil {
			t.logger.Warn().Err(err).Str("progress_id", record.ID).Msg("Progress event not published")
		}
	}

	return record, nil
}

// GetProgress returns every record for the viewer and title in append order.
func (t *Tracker) GetProgress(_ context.Context, viewerID, titleID string) []models.WatchProgress {
	return t.store.ProgressFor(viewerID, titleID)
}

// Latest keeps the most recent record per episode, ordered by episode first
// appearance. Records with equal timestamps resolve to the later append.
func Latest(records []models.WatchProgress) []models.WatchProgress {
	index := make(map[string]int, len(records))
	out := make([]models.WatchProgress, 0, len(records))
	for _, r := range records {
		i, seen := index[r.EpisodeID]
		if !seen {
			index[r.EpisodeID] = len(out)
			out = append(out, r)
			continue
		}
		if !r.UpdatedAt.Before(out[i].UpdatedAt) {
			out[i] = r
		}
	}
	return out
}
