// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package progress

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/events"
	"github.com/cce459/AniLifeClone/internal/logging"
	"github.com/cce459/AniLifeClone/internal/models"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ProgressRecorded
	err    error
}

func (p *recordingPublisher) PublishProgressRecorded(_ context.Context, e events.ProgressRecorded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fixture struct {
	store   *catalog.MemoryStore
	tracker *Tracker
	pub     *recordingPublisher
	title   models.Title
	other   models.Title
	ep1     models.Episode
	ep2     models.Episode
	otherEp models.Episode
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := catalog.NewMemoryStore(logging.NewTestLogger(io.Discard))

	mk := func(name string, count int) models.Title {
		title, err := store.CreateTitle(models.TitleInput{
			Name: name, Synopsis: "s", Genre: "액션", Rating: "9.0",
			EpisodeCount: count, Status: models.StatusOngoing, Year: 2024, ThumbnailURL: "u",
		})
		if err != nil {
			t.Fatalf("CreateTitle() error = %v", err)
		}
		return title
	}
	ep := func(titleID string, n int) models.Episode {
		e, err := store.CreateEpisode(models.EpisodeInput{TitleID: titleID, Number: n, Name: "ep", Duration: "24:00"})
		if err != nil {
			t.Fatalf("CreateEpisode() error = %v", err)
		}
		return e
	}

	f := &fixture{store: store, pub: &recordingPublisher{}}
	f.title = mk("main", 4)
	f.other = mk("other", 2)
	f.ep1 = ep(f.title.ID, 1)
	f.ep2 = ep(f.title.ID, 2)
	f.otherEp = ep(f.other.ID, 1)
	f.tracker = NewTracker(store, f.pub, logging.NewTestLogger(io.Discard))
	return f
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestRecordProgress_Defaults(t *testing.T) {
	f := newFixture(t)
	fixed := time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)
	f.tracker.now = func() time.Time { return fixed }

	record, err := f.tracker.RecordProgress(context.Background(), models.ProgressInput{
		TitleID: f.title.ID, EpisodeID: f.ep1.ID, ViewerID: "viewer",
	})
	if err != nil {
		t.Fatalf("RecordProgress() error = %v", err)
	}
	if record.ID == "" || record.ProgressSeconds != 0 || record.Completed {
		t.Errorf("record = %+v, want defaults 0/false", record)
	}
	if !record.CreatedAt.Equal(fixed) || !record.UpdatedAt.Equal(fixed) {
		t.Errorf("timestamps = %v/%v, want %v", record.CreatedAt, record.UpdatedAt, fixed)
	}
}

func TestRecordProgress_AppendsRatherThanUpserts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := models.ProgressInput{
		TitleID: f.title.ID, EpisodeID: f.ep1.ID, ViewerID: "viewer",
		ProgressSeconds: intPtr(120),
	}

	first, err := f.tracker.RecordProgress(ctx, input)
	if err != nil {
		t.Fatalf("first RecordProgress() error = %v", err)
	}
	input.ProgressSeconds = intPtr(900)
	input.Completed = boolPtr(true)
	second, err := f.tracker.RecordProgress(ctx, input)
	if err != nil {
		t.Fatalf("second RecordProgress() error = %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("records share an ID")
	}

	records := f.tracker.GetProgress(ctx, "viewer", f.title.ID)
	if len(records) != 2 {
		t.Fatalf("GetProgress() len = %d, want 2", len(records))
	}
	if records[0].ProgressSeconds != 120 || records[1].ProgressSeconds != 900 || !records[1].Completed {
		t.Errorf("records = %+v", records)
	}
}

func TestRecordProgress_Errors(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name    string
		input   models.ProgressInput
		wantErr error
	}{
		{"missing title id", models.ProgressInput{EpisodeID: f.ep1.ID, ViewerID: "v"}, catalog.ErrValidation},
		{"missing episode id", models.ProgressInput{TitleID: f.title.ID, ViewerID: "v"}, catalog.ErrValidation},
		{"missing viewer id", models.ProgressInput{TitleID: f.title.ID, EpisodeID: f.ep1.ID}, catalog.ErrValidation},
		{"negative seconds", models.ProgressInput{TitleID: f.title.ID, EpisodeID: f.ep1.ID, ViewerID: "v", ProgressSeconds: intPtr(-1)}, catalog.ErrValidation},
		{"unknown title", models.ProgressInput{TitleID: "nope", EpisodeID: f.ep1.ID, ViewerID: "v"}, catalog.ErrNotFound},
		{"unknown episode", models.ProgressInput{TitleID: f.title.ID, EpisodeID: "nope", ViewerID: "v"}, catalog.ErrNotFound},
		{"episode of another title", models.ProgressInput{TitleID: f.title.ID, EpisodeID: f.otherEp.ID, ViewerID: "v"}, catalog.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tracker.RecordProgress(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := f.store.Stats().Progress; got != 0 {
		t.Errorf("failed calls stored %d records", got)
	}
	if len(f.pub.events) != 0 {
		t.Errorf("failed calls published %d events", len(f.pub.events))
	}
}

func TestRecordProgress_PublishesEvent(t *testing.T) {
	f := newFixture(t)
	record, err := f.tracker.RecordProgress(context.Background(), models.ProgressInput{
		TitleID: f.title.ID, EpisodeID: f.ep2.ID, ViewerID: "viewer", Completed: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("RecordProgress() error = %v", err)
	}

	if len(f.pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(f.pub.events))
	}
	e := f.pub.events[0]
	if e.ProgressID != record.ID || e.EpisodeNumber != 2 || e.EpisodeCount != 4 || !e.Completed {
		t.Errorf("event = %+v", e)
	}
}

func TestRecordProgress_PublishFailureDoesNotFailWrite(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("breaker open")

	_, err := f.tracker.RecordProgress(context.Background(), models.ProgressInput{
		TitleID: f.title.ID, EpisodeID: f.ep1.ID, ViewerID: "viewer",
	})
	if err != nil {
		t.Fatalf("RecordProgress() error = %v, want nil", err)
	}
	if got := f.store.Stats().Progress; got != 1 {
		t.Errorf("stored %d records, want 1", got)
	}
}

func TestRecordProgress_NilPublisher(t *testing.T) {
	f := newFixture(t)
	tracker := NewTracker(f.store, nil, logging.NewTestLogger(io.Discard))
	if _, err := tracker.RecordProgress(context.Background(), models.ProgressInput{
		TitleID: f.title.ID, EpisodeID: f.ep1.ID, ViewerID: "viewer",
	}); err != nil {
		t.Errorf("RecordProgress() error = %v", err)
	}
}

func TestGetProgress_Empty(t *testing.T) {
	f := newFixture(t)
	if got := f.tracker.GetProgress(context.Background(), "nobody", f.title.ID); len(got) != 0 {
		t.Errorf("GetProgress() = %v, want empty", got)
	}
}

func TestLatest(t *testing.T) {
	base := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	records := []models.WatchProgress{
		{ID: "a1", EpisodeID: "e1", UpdatedAt: base},
		{ID: "b1", EpisodeID: "e2", UpdatedAt: base.Add(time.Minute)},
		{ID: "a2", EpisodeID: "e1", UpdatedAt: base.Add(2 * time.Minute)},
		{ID: "a3", EpisodeID: "e1", UpdatedAt: base.Add(time.Second)},
		{ID: "b2", EpisodeID: "e2", UpdatedAt: base.Add(time.Minute)},
	}

	got := Latest(records)
	if len(got) != 2 {
		t.Fatalf("Latest() len = %d, want 2", len(got))
	}
	if got[0].ID != "a2" {
		t.Errorf("e1 latest = %s, want a2", got[0].ID)
	}
	if got[1].ID != "b2" {
		t.Errorf("e2 latest = %s, want b2 (later append wins ties)", got[1].ID)
	}
	if len(records) != 5 || records[0].ID != "a1" {
		t.Error("Latest modified its input")
	}
	if out := Latest(nil); out == nil || len(out) != 0 {
		t.Errorf("Latest(nil) = %v", out)
	}
}
