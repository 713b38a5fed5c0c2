// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package api

import (
	"errors"
	"net/http"

	"github.com/cce459/AniLifeClone/internal/catalog"
	"github.com/cce459/AniLifeClone/internal/logging"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// writeDomainError maps catalog error kinds onto HTTP responses. Internal
// and unclassified errors are logged and reported as a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *catalog.ValidationError
	var nf *catalog.NotFoundError
	var ierr *catalog.InternalError

	switch {
	case errors.As(err, &verr):
		details := map[string]interface{}{}
		if verr.Field != "" {
			details["field"] = verr.Field
		}
		respondErrorWithDetails(w, http.StatusBadRequest, ErrCodeValidation, verr.Message, details)
	case errors.Is(err, catalog.ErrValidation):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	case errors.As(err, &nf):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, nf.Error(), nil)
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
	case errors.Is(err, catalog.ErrInternal):
		log := logging.Ctx(r.Context())
		event := log.Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path))
		if errors.As(err, &ierr) {
			event = event.Str("op", ierr.Op)
		}
		event.Msg("Store operation failed")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", nil)
	default:
		log := logging.Ctx(r.Context())
		log.Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", nil)
	}
}
