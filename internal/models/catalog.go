// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// ReleaseStatus is the airing state of a title.
type ReleaseStatus string

const (
	StatusCompleted ReleaseStatus = "COMPLETED"
	StatusOngoing   ReleaseStatus = "ONGOING"
)

// Korean labels used by the original catalog feed.
const (
	statusCompletedKo = "완결"
	statusOngoingKo   = "방영중"
)

// ParseReleaseStatus accepts the canonical names (any case) and the Korean
// labels "완결" and "방영중".
func ParseReleaseStatus(s string) (ReleaseStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(StatusCompleted), statusCompletedKo:
		return StatusCompleted, nil
	case string(StatusOngoing), statusOngoingKo:
		return StatusOngoing, nil
	}
	return "", fmt.Errorf("unknown release status %q", s)
}

// Valid reports whether s is one of the defined statuses.
func (s ReleaseStatus) Valid() bool {
	return s == StatusCompleted || s == StatusOngoing
}

// Label returns the Korean display label.
func (s ReleaseStatus) Label() string {
	switch s {
	case StatusCompleted:
		return statusCompletedKo
	case StatusOngoing:
		return statusOngoingKo
	default:
		return string(s)
	}
}

// UnmarshalJSON decodes canonical or Korean labels. Unknown values are kept
// verbatim so that validation can report them.
func (s *ReleaseStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseReleaseStatus(raw); err == nil {
		*s = parsed
		return nil
	}
	*s = ReleaseStatus(raw)
	return nil
}

// Title is one catalog entry. ID is assigned by the store and never changes.
type Title struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Synopsis           string        `json:"synopsis"`
	Genre              string        `json:"genre"`
	Rating             string        `json:"rating"`
	EpisodeCount       int           `json:"episodeCount"`
	Status             ReleaseStatus `json:"status"`
	Year               int           `json:"year"`
	ThumbnailURL       string        `json:"thumbnailUrl"`
	HeroImageURL       *string       `json:"heroImageUrl"`
	IsRegionalOriginal bool          `json:"isRegionalOriginal"`
	IsFeatured         bool          `json:"isFeatured"`
	IsLatest           bool          `json:"isLatest"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// TitleInput holds the caller-supplied fields of a new Title. The flags are
// optional and default to false.
type TitleInput struct {
	Name               string        `json:"name" validate:"notblank"`
	Synopsis           string        `json:"synopsis" validate:"notblank"`
	Genre              string        `json:"genre" validate:"notblank"`
	Rating             string        `json:"rating" validate:"notblank,decimal"`
	EpisodeCount       int           `json:"episodeCount" validate:"gt=0"`
	Status             ReleaseStatus `json:"status" validate:"oneof=COMPLETED ONGOING"`
	Year               int           `json:"year" validate:"gt=0"`
	ThumbnailURL       string        `json:"thumbnailUrl" validate:"notblank"`
	HeroImageURL       *string       `json:"heroImageUrl,omitempty" validate:"omitempty,notblank"`
	IsRegionalOriginal *bool         `json:"isRegionalOriginal,omitempty"`
	IsFeatured         *bool         `json:"isFeatured,omitempty"`
	IsLatest           *bool         `json:"isLatest,omitempty"`
}

// Episode is one installment of a Title.
type Episode struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"titleId"`
	Number    int       `json:"episodeNumber"`
	Name      string    `json:"name"`
	VideoURL  *string   `json:"videoUrl"`
	Duration  string    `json:"duration"`
	CreatedAt time.Time `json:"createdAt"`
}

// EpisodeInput holds the caller-supplied fields of a new Episode. Number is
// range-checked by the store so that a bad number and a duplicate number
// fail the same way.
type EpisodeInput struct {
	TitleID  string  `json:"titleId" validate:"notblank"`
	Number   int     `json:"episodeNumber"`
	Name     string  `json:"name" validate:"notblank"`
	VideoURL *string `json:"videoUrl,omitempty"`
	Duration string  `json:"duration" validate:"notblank"`
}

// BoolValue dereferences an optional flag, treating nil as false.
func BoolValue(b *bool) bool {
	return b != nil && *b
}

// IntValue dereferences an optional integer, treating nil as 0.
func IntValue(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
