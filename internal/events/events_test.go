// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package events

import (
	"testing"
	"time"

	"github.com/cce459/AniLifeClone/internal/models"
)

func validEvent() ProgressRecorded {
	return ProgressRecorded{
		ProgressID:      "p-1",
		TitleID:         "t-1",
		EpisodeID:       "e-3",
		ViewerID:        "viewer",
		ProgressSeconds: 600,
		RecordedAt:      time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
		EpisodeCount:    12,
		EpisodeNumber:   3,
	}
}

func TestNewProgressRecorded(t *testing.T) {
	now := time.Now().UTC()
	record := models.WatchProgress{
		ID: "p", TitleID: "t", EpisodeID: "e", ViewerID: "v",
		ProgressSeconds: 42, Completed: true, CreatedAt: now,
	}
	event := NewProgressRecorded(record, models.Title{ID: "t", EpisodeCount: 24}, models.Episode{ID: "e", Number: 7})

	if event.ProgressID != "p" || event.ViewerID != "v" || event.ProgressSeconds != 42 || !event.Completed {
		t.Errorf("record fields not copied: %+v", event)
	}
	if event.EpisodeCount != 24 || event.EpisodeNumber != 7 || !event.RecordedAt.Equal(now) {
		t.Errorf("episode position not copied: %+v", event)
	}
}

func TestHistoryPercent(t *testing.T) {
	tests := []struct {
		name   string
		number int
		count  int
		want   int
	}{
		{"first of four", 1, 4, 25},
		{"half", 6, 12, 50},
		{"last", 12, 12, 100},
		{"beyond count", 14, 12, 100},
		{"unknown count", 3, 0, 0},
		{"rounds down", 1, 3, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ProgressRecorded{EpisodeNumber: tt.number, EpisodeCount: tt.count}
			if got := e.HistoryPercent(); got != tt.want {
				t.Errorf("HistoryPercent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFinishesTitle(t *testing.T) {
	tests := []struct {
		name      string
		number    int
		count     int
		completed bool
		want      bool
	}{
		{"completed last episode", 12, 12, true, true},
		{"completed middle episode", 5, 12, true, false},
		{"partial last episode", 12, 12, false, false},
		{"completed past seeded range", 13, 12, true, true},
		{"no count", 1, 0, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ProgressRecorded{EpisodeNumber: tt.number, EpisodeCount: tt.count, Completed: tt.completed}
			if got := e.FinishesTitle(); got != tt.want {
				t.Errorf("FinishesTitle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarshalRejectsInvalidEvents(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProgressRecorded)
	}{
		{"missing progress id", func(e *ProgressRecorded) { e.ProgressID = "" }},
		{"missing viewer", func(e *ProgressRecorded) { e.ViewerID = "" }},
		{"missing title", func(e *ProgressRecorded) { e.TitleID = "" }},
		{"zero episode number", func(e *ProgressRecorded) { e.EpisodeNumber = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)
			if _, err := e.Marshal(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUnmarshalProgressRecorded(t *testing.T) {
	e := validEvent()
	data, err := e.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := UnmarshalProgressRecorded(data)
	if err != nil {
		t.Fatalf("UnmarshalProgressRecorded() error = %v", err)
	}
	if !got.RecordedAt.Equal(e.RecordedAt) {
		t.Errorf("RecordedAt = %v, want %v", got.RecordedAt, e.RecordedAt)
	}
	got.RecordedAt = e.RecordedAt
	if *got != e {
		t.Errorf("decoded %+v, want %+v", *got, e)
	}

	if _, err := UnmarshalProgressRecorded([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := UnmarshalProgressRecorded([]byte(`{"progressId":"p"}`)); err == nil {
		t.Error("expected validation error for incomplete payload")
	}
}
