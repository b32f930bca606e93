package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist or does not belong to the acting user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness or state
// constraint, such as linking the same gear to a trip twice.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrAlreadyCompleted is returned when completing a trip whose status is
// already completed. It matches ErrConflict under errors.Is.
var ErrAlreadyCompleted = fmt.Errorf("%w: trip already completed", ErrConflict)

// ErrUnauthorized is returned when credentials or a bearer token are missing
// or invalid. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
