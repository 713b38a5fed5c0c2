// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package preferences

import (
	"context"
	"sync"

	"github.com/cce459/AniLifeClone/internal/metrics"
	"github.com/cce459/AniLifeClone/internal/models"
)

const backendMemory = "memory"

type viewerState struct {
	favorites  []string
	watchLater []string
	history    []models.HistoryEntry
}

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu           sync.RWMutex
	viewers      map[string]*viewerState
	historyLimit int
	closed       bool
}

// NewMemoryStore creates an empty store. historyLimit <= 0 selects
// DefaultHistoryLimit.
func NewMemoryStore(historyLimit int) *MemoryStore {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &MemoryStore{
		viewers:      make(map[string]*viewerState),
		historyLimit: historyLimit,
	}
}

// Favorites implements Store.
func (m *MemoryStore) Favorites(_ context.Context, viewerID string) ([]string, error) {
	return m.readIDs(viewerID, "favorites", func(v *viewerState) []string { return v.favorites })
}

// AddFavorite implements Store.
func (m *MemoryStore) AddFavorite(_ context.Context, viewerID, titleID string) error {
	return m.mutate(viewerID, titleID, "add_favorite", func(v *viewerState) {
		v.favorites, _ = addUnique(v.favorites, titleID)
	})
}

// RemoveFavorite implements Store.
func (m *MemoryStore) RemoveFavorite(_ context.Context, viewerID, titleID string) error {
	return m.mutate(viewerID, titleID, "remove_favorite", func(v *viewerState) {
		v.favorites = removeID(v.favorites, titleID)
	})
}

// WatchLater implements Store.
func (m *MemoryStore) WatchLater(_ context.Context, viewerID string) ([]string, error) {
	return m.readIDs(viewerID, "watch_later", func(v *viewerState) []string { return v.watchLater })
}

// AddWatchLater implements Store.
func (m *MemoryStore) AddWatchLater(_ context.Context, viewerID, titleID string) error {
	return m.mutate(viewerID, titleID, "add_watch_later", func(v *viewerState) {
		v.watchLater, _ = addUnique(v.watchLater, titleID)
	})
}

// RemoveWatchLater implements Store.
func (m *MemoryStore) RemoveWatchLater(_ context.Context, viewerID, titleID string) error {
	return m.mutate(viewerID, titleID, "remove_watch_later", func(v *viewerState) {
		v.watchLater = removeID(v.watchLater, titleID)
	})
}

// History implements Store.
func (m *MemoryStore) History(_ context.Context, viewerID string) ([]models.HistoryEntry, error) {
	if err := checkViewer(viewerID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, internalError("history", ErrClosed)
	}
	metrics.RecordPreferenceOperation(backendMemory, "history", nil)
	v := m.viewers[viewerID]
	if v == nil {
		return []models.HistoryEntry{}, nil
	}
	return append([]models.HistoryEntry{}, v.history...), nil
}

// RecordWatch implements Store.
func (m *MemoryStore) RecordWatch(_ context.Context, viewerID string, entry models.HistoryEntry) error {
	if err := checkEntry(viewerID, &entry); err != nil {
		metrics.RecordPreferenceOperation(backendMemory, "record_watch", err)
		return err
	}
	return m.mutate(viewerID, entry.TitleID, "record_watch", func(v *viewerState) {
		v.history = pushHistory(v.history, entry, m.historyLimit)
	})
}

// RemoveHistory implements Store.
func (m *MemoryStore) RemoveHistory(_ context.Context, viewerID, titleID string) error {
	return m.mutate(viewerID, titleID, "remove_history", func(v *viewerState) {
		v.history = removeHistory(v.history, titleID)
	})
}

// Snapshot implements Store.
func (m *MemoryStore) Snapshot(_ context.Context, viewerID string) (models.ViewerPreferences, error) {
	if err := checkViewer(viewerID); err != nil {
		return models.ViewerPreferences{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return models.ViewerPreferences{}, internalError("snapshot", ErrClosed)
	}
	prefs := models.ViewerPreferences{
		ViewerID:   viewerID,
		Favorites:  []string{},
		WatchLater: []string{},
		History:    []models.HistoryEntry{},
	}
	if v := m.viewers[viewerID]; v != nil {
		prefs.Favorites = append(prefs.Favorites, v.favorites...)
		prefs.WatchLater = append(prefs.WatchLater, v.watchLater...)
		prefs.History = append(prefs.History, v.history...)
	}
	metrics.RecordPreferenceOperation(backendMemory, "snapshot", nil)
	return prefs, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) readIDs(viewerID, op string, pick func(*viewerState) []string) ([]string, error) {
	if err := checkViewer(viewerID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, internalError(op, ErrClosed)
	}
	metrics.RecordPreferenceOperation(backendMemory, op, nil)
	v := m.viewers[viewerID]
	if v == nil {
		return []string{}, nil
	}
	return append([]string{}, pick(v)...), nil
}

func (m *MemoryStore) mutate(viewerID, titleID, op string, apply func(*viewerState)) error {
	if err := checkIDs(viewerID, titleID); err != nil {
		metrics.RecordPreferenceOperation(backendMemory, op, err)
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return internalError(op, ErrClosed)
	}
	v := m.viewers[viewerID]
	if v == nil {
		v = &viewerState{}
		m.viewers[viewerID] = v
	}
	apply(v)
	metrics.RecordPreferenceOperation(backendMemory, op, nil)
	return nil
}

var _ Store = (*MemoryStore)(nil)
