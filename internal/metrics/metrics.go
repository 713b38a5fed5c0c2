// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto and
// updated through the Record* helpers so that callers never need to know
// label order.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anilife_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anilife_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "anilife_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Catalog Metrics
	CatalogTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "anilife_catalog_titles",
			Help: "Number of titles in the catalog",
		},
	)

	CatalogEpisodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "anilife_catalog_episodes",
			Help: "Number of episodes in the catalog",
		},
	)

	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anilife_catalog_queries_total",
			Help: "Catalog view evaluations by view name",
		},
		[]string{"view"}, // "all", "featured", "latest", "regional", "genre", "search"
	)

	// Progress Metrics
	ProgressRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anilife_progress_records_total",
			Help: "Watch progress records appended",
		},
		[]string{"completed"},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anilife_recommendations_total",
			Help: "Recommendation lists produced by start mode",
		},
		[]string{"mode"}, // "cold", "warm"
	)

	RecommendationSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "anilife_recommendation_size",
			Help:    "Number of titles in each recommendation list",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8},
		},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anilife_events_published_total",
			Help: "Events published on the in-process bus",
		},
		[]string{"topic", "result"}, // result: "ok", "error", "breaker_open"
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anilife_events_consumed_total",
			Help: "Events handled by bus consumers",
		},
		[]string{"handler", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "anilife_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Preference Store Metrics
	PreferenceOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anilife_preference_operations_total",
			Help: "Preference store operations by backend",
		},
		[]string{"backend", "operation", "result"},
	)
)

// RecordAPIRequest records a completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetCatalogSize updates the catalog gauges.
func SetCatalogSize(titles, episodes int) {
	CatalogTitles.Set(float64(titles))
	CatalogEpisodes.Set(float64(episodes))
}

// RecordCatalogQuery counts one evaluation of a catalog view.
func RecordCatalogQuery(view string) {
	CatalogQueries.WithLabelValues(view).Inc()
}

// RecordProgress counts one appended watch progress record.
func RecordProgress(completed bool) {
	ProgressRecorded.WithLabelValues(boolLabel(completed)).Inc()
}

// RecordRecommendation counts one recommendation list and its size.
func RecordRecommendation(coldStart bool, size int) {
	mode := "warm"
	if coldStart {
		mode = "cold"
	}
	RecommendationsServed.WithLabelValues(mode).Inc()
	RecommendationSize.Observe(float64(size))
}

// RecordEventPublish counts a publish attempt by outcome.
func RecordEventPublish(topic, result string) {
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordEventConsume counts a handled event by outcome.
func RecordEventConsume(handler string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsConsumed.WithLabelValues(handler, result).Inc()
}

// SetCircuitBreakerState exports a breaker state as 0, 1 or 2.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordPreferenceOperation counts a preference store call.
func RecordPreferenceOperation(backend, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	PreferenceOperations.WithLabelValues(backend, operation, result).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
