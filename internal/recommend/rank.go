// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package recommend

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cce459/AniLifeClone/internal/models"
)

// Rank computes recommendations. titles must be in catalog insertion order
// and history most-recent-first. The inputs are not modified.
//
//nolint:gocritic // Config is small and passed by value like the rest of the API
func Rank(titles []models.Title, favorites, history []string, cfg Config) Result {
	byID := make(map[string]models.Title, len(titles))
	for _, t := range titles {
		byID[t.ID] = t
	}

	favSet := toSet(favorites)
	histSet := toSet(history)

	genres := newOrderedSet()
	for _, id := range favorites {
		if t, ok := byID[id]; ok {
			genres.add(t.Genre)
		}
	}
	for _, id := range history[:min(len(history), cfg.HistoryWindow)] {
		if t, ok := byID[id]; ok {
			genres.add(t.Genre)
		}
	}

	if genres.len() == 0 {
		cold := byRatingDesc(filterTitles(titles, func(t models.Title) bool {
			_, fav := favSet[t.ID]
			return !fav
		}))
		return Result{
			Titles:          cold[:min(len(cold), cfg.ColdLimit)],
			ColdStart:       true,
			PreferredGenres: []string{},
		}
	}

	unseen := func(t models.Title) bool {
		_, fav := favSet[t.ID]
		_, seen := histSet[t.ID]
		return !fav && !seen
	}

	picked := byRatingDesc(filterTitles(titles, func(t models.Title) bool {
		return unseen(t) && genres.has(t.Genre)
	}))
	picked = picked[:min(len(picked), cfg.Limit)]

	backfilled := 0
	if len(picked) < cfg.Limit {
		chosen := make(map[string]struct{}, len(picked))
		for _, t := range picked {
			chosen[t.ID] = struct{}{}
		}
		extra := byRatingDesc(filterTitles(titles, func(t models.Title) bool {
			_, dup := chosen[t.ID]
			return unseen(t) && !dup
		}))
		extra = extra[:min(len(extra), cfg.Limit-len(picked))]
		backfilled = len(extra)
		picked = append(picked, extra...)
	}

	return Result{
		Titles:          picked,
		PreferredGenres: genres.values(),
		Backfilled:      backfilled,
	}
}

// ParseRating reads a decimal rating. Unparseable and non-finite values
// return -Inf.
func ParseRating(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.Inf(-1)
	}
	return v
}

func byRatingDesc(titles []models.Title) []models.Title {
	ratings := make(map[string]float64, len(titles))
	for _, t := range titles {
		ratings[t.ID] = ParseRating(t.Rating)
	}
	sort.SliceStable(titles, func(i, j int) bool {
		return ratings[titles[i].ID] > ratings[titles[j].ID]
	})
	return titles
}

func filterTitles(titles []models.Title, keep func(models.Title) bool) []models.Title {
	out := make([]models.Title, 0, len(titles))
	for _, t := range titles {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

type orderedSet struct {
	index map[string]struct{}
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *orderedSet) has(v string) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet) len() int { return len(s.order) }

func (s *orderedSet) values() []string {
	return append([]string{}, s.order...)
}
