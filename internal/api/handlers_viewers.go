// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/preferences"
	"github.com/cce459/AniLifeClone/internal/recommend"
)

// ViewerSnapshot returns favorites, watch-later and history together.
func (h *Handler) ViewerSnapshot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap, err := h.prefs.Snapshot(r.Context(), chi.URLParam(r, "viewerId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, snap, start)
}

// Favorites lists a viewer's favorite title IDs.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	h.listIDs(w, r, h.prefs.Favorites)
}

// AddFavorite marks a title as favorite. Adding twice is a no-op.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.changeList(w, r, true, h.prefs.AddFavorite, h.prefs.Favorites)
}

// RemoveFavorite unmarks a title.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.changeList(w, r, false, h.prefs.RemoveFavorite, h.prefs.Favorites)
}

// WatchLater lists a viewer's watch-later title IDs.
func (h *Handler) WatchLater(w http.ResponseWriter, r *http.Request) {
	h.listIDs(w, r, h.prefs.WatchLater)
}

// AddWatchLater queues a title.
func (h *Handler) AddWatchLater(w http.ResponseWriter, r *http.Request) {
	h.changeList(w, r, true, h.prefs.AddWatchLater, h.prefs.WatchLater)
}

// RemoveWatchLater dequeues a title.
func (h *Handler) RemoveWatchLater(w http.ResponseWriter, r *http.Request) {
	h.changeList(w, r, false, h.prefs.RemoveWatchLater, h.prefs.WatchLater)
}

// History lists the viewer's watch history, most recent first.
// ?filter=continue keeps started but unfinished titles and
// ?filter=completed keeps finished ones.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	history, err := h.prefs.History(r.Context(), chi.URLParam(r, "viewerId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	switch filter := r.URL.Query().Get("filter"); filter {
	case "":
	case "continue":
		history = preferences.ContinueWatching(history)
	case "completed":
		history = preferences.CompletedTitles(history)
	default:
		writeDomainError(w, r, catalog.NewValidationError("filter", "filter must be one of continue, completed"))
		return
	}
	respondList(w, history, start)
}

// RemoveHistory deletes a title from the viewer's history.
func (h *Handler) RemoveHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	viewerID := chi.URLParam(r, "viewerId")
	if err := h.prefs.RemoveHistory(r.Context(), viewerID, chi.URLParam(r, "titleId")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	history, err := h.prefs.History(r.Context(), viewerID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	respondList(w, history, start)
}

// Recommendations ranks catalog titles for the viewer.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), recommend.Request{ViewerID: chi.URLParam(r, "viewerId")})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, resp, start)
}

type listFunc func(ctx context.Context, viewerID string) ([]string, error)

type changeFunc func(ctx context.Context, viewerID, titleID string) error

func (h *Handler) listIDs(w http.ResponseWriter, r *http.Request, list listFunc) {
	start := time.Now()
	ids, err := list(r.Context(), chi.URLParam(r, "viewerId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	respondList(w, ids, start)
}

// changeList applies change and responds with the updated list. Titles
// being added must exist in the catalog; removals accept any ID so stale
// entries can be cleaned up.
func (h *Handler) changeList(w http.ResponseWriter, r *http.Request, requireTitle bool, change changeFunc, list listFunc) {
	start := time.Now()
	viewerID := chi.URLParam(r, "viewerId")
	titleID := chi.URLParam(r, "titleId")

	if requireTitle {
		if _, ok := h.store.GetTitle(titleID); !ok {
			writeDomainError(w, r, catalog.NewNotFoundError("title", titleID))
			return
		}
	}
	if err := change(r.Context(), viewerID, titleID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	ids, err := list(r.Context(), viewerID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	respondList(w, ids, start)
}
