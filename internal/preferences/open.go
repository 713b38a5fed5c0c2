// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package preferences

import (
	"fmt"

	"github.com/cce459/AniLifeClone/internal/config"
)

// Open builds the backend selected by cfg.Backend.
func Open(cfg config.PreferencesConfig) (Store, error) {
	switch cfg.Backend {
	case "", backendMemory:
		return NewMemoryStore(cfg.HistoryLimit), nil
	case backendBadger:
		return OpenBadger(BadgerConfig{
			Path:         cfg.Path,
			InMemory:     cfg.InMemory,
			HistoryLimit: cfg.HistoryLimit,
		})
	default:
		return nil, fmt.Errorf("unknown preferences backend %q", cfg.Backend)
	}
}
