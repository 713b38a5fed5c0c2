// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package api

import (
	"net/http"
	"time"

	"github.com/cce459/AniLifeClone/internal/models"
)

// Health reports overall service status with per-component checks. It
// always answers 200; use HealthReady for load balancer probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status, _ := h.healthStatus()
	respondSuccess(w, http.StatusOK, status, start)
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady answers 503 while any readiness check fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status, ready := h.healthStatus()
	if !ready {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data:   status,
			Metadata: models.Metadata{
				Timestamp:   time.Now().UTC(),
				QueryTimeMS: time.Since(start).Milliseconds(),
			},
			Error: &models.APIError{
				Code:    ErrCodeServiceUnavailable,
				Message: "Service is not ready",
			},
		})
		return
	}
	respondSuccess(w, http.StatusOK, status, start)
}

func (h *Handler) healthStatus() (models.HealthStatus, bool) {
	status := models.HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Titles:    h.store.Stats().Titles,
		Timestamp: time.Now().UTC(),
	}

	ready := true
	if len(h.checks) > 0 {
		status.Checks = make(map[string]string, len(h.checks))
		for name, check := range h.checks {
			if err := check(); err != nil {
				status.Checks[name] = err.Error()
				ready = false
				continue
			}
			status.Checks[name] = "ok"
		}
	}
	if !ready {
		status.Status = "degraded"
	}
	return status, ready
}
