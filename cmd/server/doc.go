// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

/*
Package main is the entry point for the AniLife catalog server.

AniLife serves an anime catalog (titles and episodes), records per-viewer
watch progress, keeps viewer favorites, watch-later lists and history, and
recommends titles by genre affinity.

# Application Architecture

	RootSupervisor ("anilife")
	├── MessagingSupervisor ("messaging-layer")
	│   └── Event router (progress.recorded -> history projector)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: in-memory store, seeded with the built-in titles when enabled
 4. Preferences: memory or BadgerDB backend
 5. Events (optional): watermill gochannel bus, circuit-breaking publisher,
    router with the history projector
 6. Progress tracker and recommendation engine
 7. HTTP Server: Chi router with middleware stack
 8. Supervisor Tree: Suture v4 process supervision

# Configuration

	HTTP_PORT=5000               # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	SEED_CATALOG=true            # load the built-in titles
	PREFERENCES_BACKEND=memory   # memory or badger
	PREFERENCES_PATH=/data/prefs # BadgerDB directory
	EVENTS_ENABLED=true          # project progress into watch history

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, the event router stops consuming, and the preference store is
closed last.
*/
package main
