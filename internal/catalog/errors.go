// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. Every typed error below matches
// exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// ValidationError reports missing or malformed input. It is a client error
// and is never retried. Message is complete on its own; Field names the
// first offending input field for structured responses.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a reference to a title or episode that does not
// exist.
type NotFoundError struct {
	Kind string // "title" or "episode"
	ID   string
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InternalError wraps an unexpected store failure. Error includes Cause and
// is meant for logs; the API answers with a generic message instead.
type InternalError struct {
	Op    string
	Cause error
}

// NewInternalError wraps cause for operation op.
func NewInternalError(op string, cause error) *InternalError {
	return &InternalError{Op: op, Cause: cause}
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return e.Op + ": " + e.Cause.Error()
	}
	return e.Op + ": internal error"
}

// Unwrap returns the underlying cause.
func (e *InternalError) Unwrap() error {
	return e.Cause
}

// Is matches ErrInternal.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}
