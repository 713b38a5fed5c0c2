// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

/*
Package supervisor runs AniLife's long-lived components under a suture v4
supervisor tree.

The tree has two layers below the root:

	anilife
	├── messaging-layer   event router (history projector)
	└── api-layer         HTTP server

A crash in the messaging layer restarts only that layer, so the API keeps
serving catalog reads and progress writes while events are unavailable.
Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog using the zerolog-backed slog logger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewEventRouterService(router))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
