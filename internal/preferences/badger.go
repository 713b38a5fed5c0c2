// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package preferences

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cce459/AniLifeClone/internal/logging"
	"github.com/cce459/AniLifeClone/internal/metrics"
	"github.com/cce459/AniLifeClone/internal/models"
)

const backendBadger = "badger"

// Key prefixes. The viewer ID follows the prefix.
const (
	prefixFavorites  = "fav:"
	prefixWatchLater = "later:"
	prefixHistory    = "hist:"
)

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps the database off disk.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// HistoryLimit caps each viewer's history (default 50).
	HistoryLimit int
}

// BadgerStore persists preferences in BadgerDB with one JSON value per
// viewer and list.
type BadgerStore struct {
	db           *badger.DB
	historyLimit int

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) the database described by cfg.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger preference store requires a path")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Int("history_limit", limit).
		Msg("Preference store opened")

	return &BadgerStore{db: db, historyLimit: limit}, nil
}

// Favorites implements Store.
func (b *BadgerStore) Favorites(_ context.Context, viewerID string) ([]string, error) {
	return b.readIDs(viewerID, prefixFavorites, "favorites")
}

// AddFavorite implements Store.
func (b *BadgerStore) AddFavorite(_ context.Context, viewerID, titleID string) error {
	return b.updateIDs(viewerID, titleID, prefixFavorites, "add_favorite", func(ids []string) []string {
		ids, _ = addUnique(ids, titleID)
		return ids
	})
}

// RemoveFavorite implements Store.
func (b *BadgerStore) RemoveFavorite(_ context.Context, viewerID, titleID string) error {
	return b.updateIDs(viewerID, titleID, prefixFavorites, "remove_favorite", func(ids []string) []string {
		return removeID(ids, titleID)
	})
}

// WatchLater implements Store.
func (b *BadgerStore) WatchLater(_ context.Context, viewerID string) ([]string, error) {
	return b.readIDs(viewerID, prefixWatchLater, "watch_later")
}

// AddWatchLater implements Store.
func (b *BadgerStore) AddWatchLater(_ context.Context, viewerID, titleID string) error {
	return b.updateIDs(viewerID, titleID, prefixWatchLater, "add_watch_later", func(ids []string) []string {
		ids, _ = addUnique(ids, titleID)
		return ids
	})
}

// RemoveWatchLater implements Store.
func (b *BadgerStore) RemoveWatchLater(_ context.Context, viewerID, titleID string) error {
	return b.updateIDs(viewerID, titleID, prefixWatchLater, "remove_watch_later", func(ids []string) []string {
		return removeID(ids, titleID)
	})
}

// History implements Store.
func (b *BadgerStore) History(_ context.Context, viewerID string) ([]models.HistoryEntry, error) {
	if err := checkViewer(viewerID); err != nil {
		return nil, err
	}
	if err := b.checkOpen("history"); err != nil {
		return nil, err
	}

	history := []models.HistoryEntry{}
	err := b.db.View(func(txn *badger.Txn) error {
		return readValue(txn, historyKey(viewerID), &history)
	})
	metrics.RecordPreferenceOperation(backendBadger, "history", err)
	if err != nil {
		return nil, internalError("history", err)
	}
	return history, nil
}

// RecordWatch implements Store.
func (b *BadgerStore) RecordWatch(_ context.Context, viewerID string, entry models.HistoryEntry) error {
	if err := checkEntry(viewerID, &entry); err != nil {
		metrics.RecordPreferenceOperation(backendBadger, "record_watch", err)
		return err
	}
	return b.updateHistory(viewerID, "record_watch", func(h []models.HistoryEntry) []models.HistoryEntry {
		return pushHistory(h, entry, b.historyLimit)
	})
}

// RemoveHistory implements Store.
func (b *BadgerStore) RemoveHistory(_ context.Context, viewerID, titleID string) error {
	if err := checkIDs(viewerID, titleID); err != nil {
		return err
	}
	return b.updateHistory(viewerID, "remove_history", func(h []models.HistoryEntry) []models.HistoryEntry {
		return removeHistory(h, titleID)
	})
}

// Snapshot implements Store. All three lists are read in one transaction.
func (b *BadgerStore) Snapshot(_ context.Context, viewerID string) (models.ViewerPreferences, error) {
	if err := checkViewer(viewerID); err != nil {
		return models.ViewerPreferences{}, err
	}
	if err := b.checkOpen("snapshot"); err != nil {
		return models.ViewerPreferences{}, err
	}

	prefs := models.ViewerPreferences{
		ViewerID:   viewerID,
		Favorites:  []string{},
		WatchLater: []string{},
		History:    []models.HistoryEntry{},
	}
	err := b.db.View(func(txn *badger.Txn) error {
		if err := readValue(txn, []byte(prefixFavorites+viewerID), &prefs.Favorites); err != nil {
			return err
		}
		if err := readValue(txn, []byte(prefixWatchLater+viewerID), &prefs.WatchLater); err != nil {
			return err
		}
		return readValue(txn, historyKey(viewerID), &prefs.History)
	})
	metrics.RecordPreferenceOperation(backendBadger, "snapshot", err)
	if err != nil {
		return models.ViewerPreferences{}, internalError("snapshot", err)
	}
	return prefs, nil
}

// Close implements Store.
func (b *BadgerStore) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}

func (b *BadgerStore) checkOpen(op string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return internalError(op, ErrClosed)
	}
	return nil
}

// Conflict retry bounds for read-modify-write transactions.
const (
	maxConflictAttempts = 16
	conflictBackoff     = time.Millisecond
)

// retryOnConflict runs update again while it fails with badger.ErrConflict,
// sleeping a little longer after each attempt.
func retryOnConflict(update func() error) error {
	var err error
	for attempt := 1; attempt <= maxConflictAttempts; attempt++ {
		if err = update(); !errors.Is(err, badger.ErrConflict) {
			return err
		}
		if attempt < maxConflictAttempts {
			time.Sleep(time.Duration(attempt) * conflictBackoff)
		}
	}
	return err
}

func (b *BadgerStore) readIDs(viewerID, prefix, op string) ([]string, error) {
	if err := checkViewer(viewerID); err != nil {
		return nil, err
	}
	if err := b.checkOpen(op); err != nil {
		return nil, err
	}

	ids := []string{}
	err := b.db.View(func(txn *badger.Txn) error {
		return readValue(txn, []byte(prefix+viewerID), &ids)
	})
	metrics.RecordPreferenceOperation(backendBadger, op, err)
	if err != nil {
		return nil, internalError(op, err)
	}
	return ids, nil
}

func (b *BadgerStore) updateIDs(viewerID, titleID, prefix, op string, apply func([]string) []string) error {
	if err := checkIDs(viewerID, titleID); err != nil {
		metrics.RecordPreferenceOperation(backendBadger, op, err)
		return err
	}
	if err := b.checkOpen(op); err != nil {
		return err
	}

	key := []byte(prefix + viewerID)
	err := retryOnConflict(func() error {
		return b.db.Update(func(txn *badger.Txn) error {
			ids := []string{}
			if err := readValue(txn, key, &ids); err != nil {
				return err
			}
			return writeValue(txn, key, apply(ids))
		})
	})
	metrics.RecordPreferenceOperation(backendBadger, op, err)
	if err != nil {
		return internalError(op, err)
	}
	return nil
}

func (b *BadgerStore) updateHistory(viewerID, op string, apply func([]models.HistoryEntry) []models.HistoryEntry) error {
	if err := b.checkOpen(op); err != nil {
		return err
	}

	key := historyKey(viewerID)
	err := retryOnConflict(func() error {
		return b.db.Update(func(txn *badger.Txn) error {
			history := []models.HistoryEntry{}
			if err := readValue(txn, key, &history); err != nil {
				return err
			}
			return writeValue(txn, key, apply(history))
		})
	})
	metrics.RecordPreferenceOperation(backendBadger, op, err)
	if err != nil {
		return internalError(op, err)
	}
	return nil
}

func historyKey(viewerID string) []byte {
	return []byte(prefixHistory + viewerID)
}

// readValue decodes key into dst. A missing key leaves dst untouched.
func readValue(txn *badger.Txn, key []byte, dst interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dst)
	})
}

func writeValue(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set(key, data)
}

var _ Store = (*BadgerStore)(nil)
