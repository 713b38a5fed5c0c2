// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

// Package recommend ranks catalog titles for a viewer from their favorites
// and watch history.
//
// # Algorithm
//
// Rank is a pure function of the title list, the favorite IDs and the
// history IDs (most recent first):
//
//  1. Preferred genres are the genres of every favorite plus the genres of
//     the first HistoryWindow history entries. IDs missing from the catalog
//     contribute nothing.
//  2. With no preferred genres (cold start), the result is the ColdLimit
//     highest-rated titles that are not favorites.
//  3. Otherwise the result starts with titles whose genre is exactly one of
//     the preferred genres, excluding favorites and anything in history,
//     highest rating first, capped at Limit.
//  4. Short lists are backfilled to Limit with the highest-rated remaining
//     titles, excluding favorites, history and titles already selected.
//
// Sorting is stable, so equal ratings keep catalog insertion order. Ratings
// that do not parse as numbers rank below every valid rating.
//
// # Usage
//
//	engine := recommend.NewEngine(store, prefs, recommend.DefaultConfig(), logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{ViewerID: "viewer-1"})
package recommend
