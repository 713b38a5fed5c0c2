// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cce459/AniLifeClone/internal/models"
	"github.com/cce459/AniLifeClone/internal/progress"
)

// RecordProgress appends a watch progress record.
func (h *Handler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var input models.ProgressInput
	if !decodeJSON(w, r, &input) {
		return
	}

	record, err := h.tracker.RecordProgress(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusCreated, record, start)
}

// GetProgress lists records for a viewer and title. With ?latest=true only
// the newest record per episode is returned.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	records := h.tracker.GetProgress(r.Context(), chi.URLParam(r, "viewerId"), chi.URLParam(r, "titleId"))
	if boolQuery(r, "latest") {
		records = progress.Latest(records)
	}
	respondList(w, records, start)
}
