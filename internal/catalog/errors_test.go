// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package catalog

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"validation", NewValidationError("name", "name is required"), ErrValidation, "name is required"},
		{"not found", NewNotFoundError("title", "t1"), ErrNotFound, `title "t1" not found`},
		{"internal with cause", NewInternalError("preferences.favorites", cause), ErrInternal, "preferences.favorites: disk full"},
		{"internal without cause", NewInternalError("catalog.seed", nil), ErrInternal, "catalog.seed: internal error"},
		{"wrapped internal", fmt.Errorf("load: %w", NewInternalError("op", cause)), ErrInternal, "load: op: disk full"},
	}

	sentinels := []error{ErrValidation, ErrNotFound, ErrInternal}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.message {
				t.Errorf("Error() = %q, want %q", got, tt.message)
			}
			for _, s := range sentinels {
				if got := errors.Is(tt.err, s); got != (s == tt.sentinel) {
					t.Errorf("errors.Is(%v) = %v", s, got)
				}
			}
		})
	}
}

func TestInternalError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("load: %w", NewInternalError("op", cause))

	if !errors.Is(err, cause) {
		t.Error("errors.Is(cause) = false, want true")
	}
	var ierr *InternalError
	if !errors.As(err, &ierr) || ierr.Op != "op" || ierr.Cause != cause {
		t.Errorf("errors.As = %+v", ierr)
	}
}
