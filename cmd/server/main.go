// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cce459/AniLifeClone/internal/api"
	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/config"
	"github.com/cce459/AniLifeClone/internal/logging"
	"github.com/cce459/AniLifeClone/internal/preferences"
	"github.com/cce459/AniLifeClone/internal/progress"
	"github.com/cce459/AniLifeClone/internal/recommend"
	"github.com/cce459/AniLifeClone/internal/supervisor"
	"github.com/cce459/AniLifeClone/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("preferences_backend", cfg.Preferences.Backend).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Starting AniLife with supervisor tree")

	store := catalog.NewMemoryStore(logging.WithComponent("catalog"))
	if cfg.Catalog.Seed {
		if err := catalog.Seed(store); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed catalog")
		}
		stats := store.Stats()
		logging.Info().Int("titles", stats.Titles).Int("episodes", stats.Episodes).Msg("Catalog seeded")
	}

	prefs, err := preferences.Open(cfg.Preferences)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open preference store")
	}
	defer func() {
		if err := prefs.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing preference store")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	checks := map[string]api.ReadinessCheck{}
	var publisher progress.EventPublisher
	if cfg.Events.Enabled {
		ev, err := initEvents(cfg, prefs)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize event bus")
		}
		defer ev.Close()

		publisher = ev.publisher
		checks["events"] = ev.readiness
		tree.AddMessagingService(services.NewEventRouterService(ev.router))
	} else {
		logging.Info().Msg("Event bus disabled (EVENTS_ENABLED=false)")
	}

	tracker := progress.NewTracker(store, publisher, logging.WithComponent("progress"))
	engine := recommend.NewEngine(store, prefs, recommend.Config{
		Limit:         cfg.Recommend.Limit,
		ColdLimit:     cfg.Recommend.ColdLimit,
		HistoryWindow: cfg.Recommend.HistoryWindow,
	}, logging.WithComponent("recommend"))

	handler := api.NewHandler(api.Dependencies{
		Store:       store,
		Tracker:     tracker,
		Preferences: prefs,
		Recommender: engine,
		Version:     version,
		Checks:      checks,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
