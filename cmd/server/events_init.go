// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package main

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/cce459/AniLifeClone/internal/config"
	"github.com/cce459/AniLifeClone/internal/events"
	"github.com/cce459/AniLifeClone/internal/logging"
	"github.com/cce459/AniLifeClone/internal/preferences"
)

// eventComponents holds the in-process bus and everything attached to it.
type eventComponents struct {
	bus       *gochannel.GoChannel
	publisher *events.Publisher
	router    *events.Router
}

// initEvents builds the bus, the circuit-breaking publisher and the router
// with the history projector registered.
func initEvents(cfg *config.Config, prefs preferences.Store) (*eventComponents, error) {
	wmLogger := logging.NewWatermillLogger()
	bus := events.NewBus(cfg.Events.BufferSize, wmLogger)

	cbConfig := events.DefaultCircuitBreakerConfig()
	if cfg.Events.BreakerThreshold > 0 {
		cbConfig.FailureThreshold = cfg.Events.BreakerThreshold
	}
	if cfg.Events.BreakerTimeout > 0 {
		cbConfig.Timeout = cfg.Events.BreakerTimeout
	}
	publisher := events.NewPublisher(bus, events.NewCircuitBreaker(cbConfig))

	routerConfig := events.DefaultRouterConfig()
	if cfg.Events.CloseTimeout > 0 {
		routerConfig.CloseTimeout = cfg.Events.CloseTimeout
	}
	if cfg.Events.RetryMaxRetries > 0 {
		routerConfig.RetryMaxRetries = cfg.Events.RetryMaxRetries
	}
	if cfg.Events.RetryInterval > 0 {
		routerConfig.RetryInitialInterval = cfg.Events.RetryInterval
	}
	router, err := events.NewRouter(routerConfig, wmLogger)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("create event router: %w", err)
	}

	events.NewHistoryProjector(prefs, logging.WithComponent("history-projector")).Register(router, bus)

	logging.Info().
		Int64("buffer_size", cfg.Events.BufferSize).
		Uint32("breaker_threshold", cbConfig.FailureThreshold).
		Msg("Event bus initialized")

	return &eventComponents{bus: bus, publisher: publisher, router: router}, nil
}

// readiness fails while the router is not consuming.
func (e *eventComponents) readiness() error {
	if !e.router.IsRunning() {
		return errors.New("event router is not running")
	}
	return nil
}

// Close stops publishing before closing the bus.
func (e *eventComponents) Close() {
	if err := e.publisher.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event publisher")
	}
	if err := e.bus.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event bus")
	}
}
