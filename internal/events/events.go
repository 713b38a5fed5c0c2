// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/cce459/AniLifeClone/internal/models"
)

// TopicProgressRecorded receives one event per appended watch progress record.
const TopicProgressRecorded = "progress.recorded"

// ProgressRecorded describes an appended watch progress record together
// with the episode position needed to derive a history percentage.
type ProgressRecorded struct {
	ProgressID      string    `json:"progressId"`
	TitleID         string    `json:"titleId"`
	EpisodeID       string    `json:"episodeId"`
	ViewerID        string    `json:"viewerId"`
	ProgressSeconds int       `json:"progressSeconds"`
	Completed       bool      `json:"completed"`
	RecordedAt      time.Time `json:"recordedAt"`
	EpisodeCount    int       `json:"episodeCount"`
	EpisodeNumber   int       `json:"episodeNumber"`
}

// NewProgressRecorded builds the event for record.
func NewProgressRecorded(record models.WatchProgress, title models.Title, episode models.Episode) ProgressRecorded {
	return ProgressRecorded{
		ProgressID:      record.ID,
		TitleID:         record.TitleID,
		EpisodeID:       record.EpisodeID,
		ViewerID:        record.ViewerID,
		ProgressSeconds: record.ProgressSeconds,
		Completed:       record.Completed,
		RecordedAt:      record.CreatedAt,
		EpisodeCount:    title.EpisodeCount,
		EpisodeNumber:   episode.Number,
	}
}

// Validate checks the fields consumers rely on.
func (e *ProgressRecorded) Validate() error {
	switch {
	case e.ProgressID == "":
		return errors.New("progressId is required")
	case e.ViewerID == "":
		return errors.New("viewerId is required")
	case e.TitleID == "":
		return errors.New("titleId is required")
	case e.EpisodeNumber <= 0:
		return errors.New("episodeNumber must be positive")
	}
	return nil
}

// HistoryPercent maps the episode position onto 0-100.
func (e *ProgressRecorded) HistoryPercent() int {
	if e.EpisodeCount <= 0 {
		return 0
	}
	return min(e.EpisodeNumber*100/e.EpisodeCount, 100)
}

// FinishesTitle reports whether the record completes the last counted episode.
func (e *ProgressRecorded) FinishesTitle() bool {
	return e.Completed && e.EpisodeCount > 0 && e.EpisodeNumber >= e.EpisodeCount
}

// Marshal validates and encodes e.
func (e *ProgressRecorded) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalProgressRecorded decodes and validates a payload.
func UnmarshalProgressRecorded(data []byte) (*ProgressRecorded, error) {
	var e ProgressRecorded
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &e, nil
}
