// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package catalog

import (
	"strings"

	"github.com/cce459/AniLifeClone/internal/metrics"
	"github.com/cce459/AniLifeClone/internal/models"
)

// Query evaluates read-only catalog views. Every call re-scans the live
// store; nothing is cached. Empty results are returned as empty slices.
type Query struct {
	store Storage
}

// NewQuery creates a Query over store.
func NewQuery(store Storage) *Query {
	return &Query{store: store}
}

// All returns every title in insertion order.
func (q *Query) All() []models.Title {
	metrics.RecordCatalogQuery("all")
	return q.store.ListTitles()
}

// Featured returns titles flagged as featured.
func (q *Query) Featured() []models.Title {
	metrics.RecordCatalogQuery("featured")
	return q.filter(func(t models.Title) bool { return t.IsFeatured })
}

// Latest returns titles flagged as latest releases.
func (q *Query) Latest() []models.Title {
	metrics.RecordCatalogQuery("latest")
	return q.filter(func(t models.Title) bool { return t.IsLatest })
}

// RegionalOriginals returns titles flagged as regional (Korean) originals.
func (q *Query) RegionalOriginals() []models.Title {
	metrics.RecordCatalogQuery("regional")
	return q.filter(func(t models.Title) bool { return t.IsRegionalOriginal })
}

// ByGenre returns titles whose genre contains genre, ignoring case.
// Genre is free text, so partial matches are intended.
func (q *Query) ByGenre(genre string) []models.Title {
	metrics.RecordCatalogQuery("genre")
	needle := strings.ToLower(genre)
	return q.filter(func(t models.Title) bool {
		return strings.Contains(strings.ToLower(t.Genre), needle)
	})
}

// Search returns titles whose name, synopsis or genre contains query,
// ignoring case. Length limits are the caller's concern.
func (q *Query) Search(query string) []models.Title {
	metrics.RecordCatalogQuery("search")
	needle := strings.ToLower(query)
	return q.filter(func(t models.Title) bool {
		return strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Synopsis), needle) ||
			strings.Contains(strings.ToLower(t.Genre), needle)
	})
}

// EpisodesOf returns the title's episodes sorted by episode number.
func (q *Query) EpisodesOf(titleID string) []models.Episode {
	return q.store.GetEpisodesOf(titleID)
}

// Genres returns the distinct genre tags in first-seen catalog order.
func (q *Query) Genres() []string {
	seen := make(map[string]struct{})
	genres := make([]string, 0)
	for _, t := range q.store.ListTitles() {
		if _, ok := seen[t.Genre]; ok {
			continue
		}
		seen[t.Genre] = struct{}{}
		genres = append(genres, t.Genre)
	}
	return genres
}

func (q *Query) filter(keep func(models.Title) bool) []models.Title {
	all := q.store.ListTitles()
	out := make([]models.Title, 0, len(all))
	for _, t := range all {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
