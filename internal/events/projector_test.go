// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package events

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/cce459/AniLifeClone/internal/logging"
	"github.com/cce459/AniLifeClone/internal/models"
	"github.com/cce459/AniLifeClone/internal/preferences"
)

func eventMessage(t *testing.T, e ProgressRecorded) *message.Message {
	t.Helper()
	data, err := e.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return message.NewMessage(e.ProgressID, data)
}

func TestHistoryProjector_Handle(t *testing.T) {
	store := preferences.NewMemoryStore(0)
	projector := NewHistoryProjector(store, logging.NewTestLogger(io.Discard))

	event := validEvent()
	if err := projector.Handle(eventMessage(t, event)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	history, _ := store.History(context.Background(), "viewer")
	if len(history) != 1 {
		t.Fatalf("history len = %d, want 1", len(history))
	}
	got := history[0]
	if got.TitleID != "t-1" || got.Progress != 25 || got.Completed || !got.WatchedAt.Equal(event.RecordedAt) {
		t.Errorf("entry = %+v", got)
	}

	last := validEvent()
	last.ProgressID = "p-2"
	last.EpisodeNumber = 12
	last.Completed = true
	if err := projector.Handle(eventMessage(t, last)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	history, _ = store.History(context.Background(), "viewer")
	if len(history) != 1 || !history[0].Completed || history[0].Progress != 100 {
		t.Errorf("after final episode history = %+v", history)
	}
}

func TestHistoryProjector_DropsMalformedPayload(t *testing.T) {
	store := preferences.NewMemoryStore(0)
	projector := NewHistoryProjector(store, logging.NewTestLogger(io.Discard))

	if err := projector.Handle(message.NewMessage("x", []byte("garbage"))); err != nil {
		t.Errorf("malformed payload should be acked, got %v", err)
	}
}

type brokenStore struct {
	preferences.Store
}

func (brokenStore) RecordWatch(context.Context, string, models.HistoryEntry) error {
	return errors.New("disk full")
}

func TestHistoryProjector_ReturnsStoreErrors(t *testing.T) {
	projector := NewHistoryProjector(brokenStore{}, logging.NewTestLogger(io.Discard))
	if err := projector.Handle(eventMessage(t, validEvent())); err == nil {
		t.Error("expected error so the router retries")
	}
}

func TestRouter_ProjectsPublishedEvents(t *testing.T) {
	bus := NewBus(8, nil)
	defer bus.Close()

	cfg := DefaultRouterConfig()
	cfg.CloseTimeout = time.Second
	router, err := NewRouter(cfg, nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	store := preferences.NewMemoryStore(0)
	NewHistoryProjector(store, logging.NewTestLogger(io.Discard)).Register(router, bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- router.Run(ctx) }()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}
	if !router.IsRunning() {
		t.Error("IsRunning() = false while running")
	}

	pub := NewPublisher(bus, nil)
	if err := pub.PublishProgressRecorded(ctx, validEvent()); err != nil {
		t.Fatalf("publish error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		history, _ := store.History(context.Background(), "viewer")
		if len(history) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("event was not projected into history")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("router did not stop")
	}
}
