// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

/*
Package events carries domain events over an in-process Watermill bus.

The only topic today is TopicProgressRecorded. The progress tracker
publishes a ProgressRecorded event after each successful append, and the
HistoryProjector folds those events into the viewer's watch history in the
preference store.

Components:

  - Bus: a gochannel Pub/Sub shared by publishers and the router
  - Publisher: JSON encoding plus a gobreaker circuit breaker. Publish
    failures are reported to the caller, who decides whether they matter
    (the tracker logs and moves on)
  - Router: message.Router with Recoverer and Retry middleware
  - HistoryProjector: the consumer that updates viewer history

Delivery is at-most-once across restarts. The bus is not persistent, so
events published while no handler is subscribed are dropped.
*/
package events
