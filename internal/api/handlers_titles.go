// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/models"
)

// ListTitles returns every title in insertion order.
func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	respondList(w, h.query.All(), time.Now())
}

// FeaturedTitles returns featured titles.
func (h *Handler) FeaturedTitles(w http.ResponseWriter, r *http.Request) {
	respondList(w, h.query.Featured(), time.Now())
}

// LatestTitles returns titles flagged as latest releases.
func (h *Handler) LatestTitles(w http.ResponseWriter, r *http.Request) {
	respondList(w, h.query.Latest(), time.Now())
}

// RegionalTitles returns regional original titles.
func (h *Handler) RegionalTitles(w http.ResponseWriter, r *http.Request) {
	respondList(w, h.query.RegionalOriginals(), time.Now())
}

// SearchTitles serves both /titles/search/{query} and /titles/search?q=.
// Queries shorter than MinSearchLength after trimming are rejected.
func (h *Handler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := chi.URLParam(r, "query")
	if q == "" {
		q = r.URL.Query().Get("q")
	}
	q = strings.TrimSpace(q)

	if len([]rune(q)) < MinSearchLength {
		respondErrorWithDetails(w, http.StatusBadRequest, ErrCodeValidation,
			"Search query must be at least 2 characters",
			map[string]interface{}{"field": "query", "min": MinSearchLength})
		return
	}
	respondList(w, h.query.Search(q), start)
}

// TitlesByGenre returns titles whose genre contains the path parameter.
func (h *Handler) TitlesByGenre(w http.ResponseWriter, r *http.Request) {
	respondList(w, h.query.ByGenre(chi.URLParam(r, "genre")), time.Now())
}

// GetTitle returns one title.
func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	title, ok := h.store.GetTitle(id)
	if !ok {
		writeDomainError(w, r, catalog.NewNotFoundError("title", id))
		return
	}
	respondSuccess(w, http.StatusOK, title, start)
}

// TitleEpisodes returns a title's episodes sorted by number. Unknown titles
// are 404 so clients can tell them apart from titles with no episodes.
func (h *Handler) TitleEpisodes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if _, ok := h.store.GetTitle(id); !ok {
		writeDomainError(w, r, catalog.NewNotFoundError("title", id))
		return
	}
	respondList(w, h.query.EpisodesOf(id), start)
}

// CreateTitle adds a title.
func (h *Handler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var input models.TitleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	title, err := h.store.CreateTitle(input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/titles/"+title.ID)
	respondSuccess(w, http.StatusCreated, title, start)
}

// CreateEpisode adds an episode to the title in the path. A titleId in the
// body, if present, must match.
func (h *Handler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	titleID := chi.URLParam(r, "id")

	var input models.EpisodeInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.TitleID != "" && input.TitleID != titleID {
		writeDomainError(w, r, catalog.NewValidationError("titleId", "titleId does not match the title in the path"))
		return
	}
	input.TitleID = titleID

	episode, err := h.store.CreateEpisode(input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/episodes/"+episode.ID)
	respondSuccess(w, http.StatusCreated, episode, start)
}

// GetEpisode returns one episode.
func (h *Handler) GetEpisode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	episode, ok := h.store.GetEpisode(id)
	if !ok {
		writeDomainError(w, r, catalog.NewNotFoundError("episode", id))
		return
	}
	respondSuccess(w, http.StatusOK, episode, start)
}

// Genres returns the distinct genres in catalog order.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	respondList(w, h.query.Genres(), time.Now())
}
