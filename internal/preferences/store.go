// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

// Package preferences persists per-viewer favorites, watch-later lists and
// watch history.
//
// Two backends implement Store: MemoryStore for single-process runs and
// tests, and BadgerStore for durable storage. Both share the list rules in
// this file, so ordering and capping behave identically:
//
//   - Favorites and watch-later are sets kept in insertion order.
//   - History is most-recent-first. Recording a title that is already
//     present moves it to the front, and the list is capped at the
//     configured limit.
package preferences

import (
	"context"
	"errors"
	"strings"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/models"
	"github.com/cce459/AniLifeClone/internal/validation"
)

// DefaultHistoryLimit is the history cap used when none is configured.
const DefaultHistoryLimit = 50

// ErrClosed is the cause of the InternalError returned by operations on a
// closed store.
var ErrClosed = errors.New("preference store is closed")

// internalError wraps a backend failure of op as a catalog.InternalError.
func internalError(op string, err error) error {
	return catalog.NewInternalError("preferences."+op, err)
}

// Store is the viewer preference repository.
type Store interface {
	Favorites(ctx context.Context, viewerID string) ([]string, error)
	AddFavorite(ctx context.Context, viewerID, titleID string) error
	RemoveFavorite(ctx context.Context, viewerID, titleID string) error

	WatchLater(ctx context.Context, viewerID string) ([]string, error)
	AddWatchLater(ctx context.Context, viewerID, titleID string) error
	RemoveWatchLater(ctx context.Context, viewerID, titleID string) error

	// History returns entries most-recent-first.
	History(ctx context.Context, viewerID string) ([]models.HistoryEntry, error)
	// RecordWatch moves entry.TitleID to the front of the history.
	RecordWatch(ctx context.Context, viewerID string, entry models.HistoryEntry) error
	RemoveHistory(ctx context.Context, viewerID, titleID string) error

	// Snapshot returns all three lists for a viewer.
	Snapshot(ctx context.Context, viewerID string) (models.ViewerPreferences, error)

	Close() error
}

// ContinueWatching returns entries that were started but not completed.
func ContinueWatching(history []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history))
	for _, h := range history {
		if !h.Completed && h.Progress > 0 {
			out = append(out, h)
		}
	}
	return out
}

// CompletedTitles returns completed entries.
func CompletedTitles(history []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history))
	for _, h := range history {
		if h.Completed {
			out = append(out, h)
		}
	}
	return out
}

func checkIDs(viewerID, titleID string) error {
	if strings.TrimSpace(viewerID) == "" {
		return catalog.NewValidationError("viewerId", "viewerId is required")
	}
	if strings.TrimSpace(titleID) == "" {
		return catalog.NewValidationError("titleId", "titleId is required")
	}
	return nil
}

func checkViewer(viewerID string) error {
	if strings.TrimSpace(viewerID) == "" {
		return catalog.NewValidationError("viewerId", "viewerId is required")
	}
	return nil
}

func checkEntry(viewerID string, entry *models.HistoryEntry) error {
	if err := checkViewer(viewerID); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(entry); verr != nil {
		return catalog.FromValidation(verr)
	}
	return nil
}

func addUnique(list []string, id string) ([]string, bool) {
	for _, existing := range list {
		if existing == id {
			return list, false
		}
	}
	return append(list, id), true
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// pushHistory returns history with entry at the front, any older entry for
// the same title dropped, truncated to limit.
func pushHistory(history []models.HistoryEntry, entry models.HistoryEntry, limit int) []models.HistoryEntry {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	out := make([]models.HistoryEntry, 0, min(len(history)+1, limit))
	out = append(out, entry)
	for _, h := range history {
		if len(out) == limit {
			break
		}
		if h.TitleID != entry.TitleID {
			out = append(out, h)
		}
	}
	return out
}

func removeHistory(history []models.HistoryEntry, titleID string) []models.HistoryEntry {
	out := history[:0]
	for _, h := range history {
		if h.TitleID != titleID {
			out = append(out, h)
		}
	}
	return out
}
