// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cce459/AniLifeClone/internal/middleware"
)

// Router wires handlers and middleware into a Chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil chiMW uses NewChiMiddleware(nil).
func NewRouter(handler *Handler, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMW}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// ========================
	// Catalog API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/titles", func(r chi.Router) {
			r.Get("/", h.ListTitles)
			r.Post("/", h.CreateTitle)
			r.Get("/featured", h.FeaturedTitles)
			r.Get("/latest", h.LatestTitles)
			r.Get("/regional", h.RegionalTitles)
			r.Get("/search", h.SearchTitles)
			r.Get("/search/{query}", h.SearchTitles)
			r.Get("/genre/{genre}", h.TitlesByGenre)
			r.Get("/{id}", h.GetTitle)
			r.Get("/{id}/episodes", h.TitleEpisodes)
			r.Post("/{id}/episodes", h.CreateEpisode)
		})

		r.Get("/episodes/{id}", h.GetEpisode)
		r.Get("/genres", h.Genres)

		r.Post("/progress", h.RecordProgress)
		r.Get("/progress/{viewerId}/{titleId}", h.GetProgress)

		r.Route("/viewers/{viewerId}", func(r chi.Router) {
			r.Get("/", h.ViewerSnapshot)

			r.Get("/favorites", h.Favorites)
			r.Put("/favorites/{titleId}", h.AddFavorite)
			r.Delete("/favorites/{titleId}", h.RemoveFavorite)

			r.Get("/watch-later", h.WatchLater)
			r.Put("/watch-later/{titleId}", h.AddWatchLater)
			r.Delete("/watch-later/{titleId}", h.RemoveWatchLater)

			r.Get("/history", h.History)
			r.Delete("/history/{titleId}", h.RemoveHistory)

			r.Get("/recommendations", h.Recommendations)
		})
	})

	return r
}
