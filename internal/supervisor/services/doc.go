// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

/*
Package services adapts AniLife components to suture's Serve pattern.

HTTPServerService wraps an *http.Server: ListenAndServe runs in a goroutine
and context cancellation triggers Shutdown with a bounded timeout.

EventRouterService wraps the watermill-based events.Router. A watermill
router cannot be run twice, so an unexpected stop is reported with
suture.ErrDoNotRestart instead of being retried forever.
*/
package services
