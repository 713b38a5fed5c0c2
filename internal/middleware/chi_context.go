// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package middleware

import (
	"context"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// withChiRequestID lets chimiddleware.GetReqID see our request ID.
func withChiRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, chimiddleware.RequestIDKey, id)
}

// GetRequestID returns the request ID assigned by RequestID.
func GetRequestID(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}
