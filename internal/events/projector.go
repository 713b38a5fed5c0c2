// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package events

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/metrics"
	"github.com/cce459/AniLifeClone/internal/models"
	"github.com/cce459/AniLifeClone/internal/preferences"
)

// HistoryHandlerName identifies the projector in router logs and metrics.
const HistoryHandlerName = "history-projector"

// HistoryProjector folds ProgressRecorded events into viewer watch history.
type HistoryProjector struct {
	store  preferences.Store
	logger zerolog.Logger
}

// NewHistoryProjector creates a projector writing to store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHistoryProjector(store preferences.Store, logger zerolog.Logger) *HistoryProjector {
	return &HistoryProjector{
		store:  store,
		logger: logger.With().Str("component", HistoryHandlerName).Logger(),
	}
}

// Register subscribes the projector to TopicProgressRecorded on router.
func (p *HistoryProjector) Register(router *Router, subscriber message.Subscriber) {
	router.AddConsumerHandler(HistoryHandlerName, TopicProgressRecorded, subscriber, p.Handle)
}

// Handle processes one message. Undecodable payloads are acked and dropped
// since retrying cannot fix them; store errors are returned for retry.
func (p *HistoryProjector) Handle(msg *message.Message) error {
	event, err := UnmarshalProgressRecorded(msg.Payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed progress event")
		metrics.RecordEventConsume(HistoryHandlerName, err)
		return nil
	}

	entry := models.HistoryEntry{
		TitleID:   event.TitleID,
		WatchedAt: event.RecordedAt,
		Progress:  event.HistoryPercent(),
		Completed: event.FinishesTitle(),
	}

	err = p.store.RecordWatch(msg.Context(), event.ViewerID, entry)
	metrics.RecordEventConsume(HistoryHandlerName, err)
	if errors.Is(err, catalog.ErrValidation) {
		p.logger.Warn().Err(err).Str("viewer_id", event.ViewerID).Msg("Rejected history entry")
		return nil
	}
	if err != nil {
		return fmt.Errorf("record watch: %w", err)
	}

	p.logger.Debug().
		Str("viewer_id", event.ViewerID).
		Str("title_id", event.TitleID).
		Int("progress", entry.Progress).
		Bool("completed", entry.Completed).
		Msg("History updated")
	return nil
}
