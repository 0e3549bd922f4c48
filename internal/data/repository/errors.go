// Package repository persists the booking domain. This file holds the
// sentinel errors shared across layers: repositories and services wrap
// them with context, handlers translate them to HTTP statuses with
// errors.Is. Anything not matching a sentinel is treated as a storage
// failure and surfaces as 500.
package repository

import "errors"

// ErrNotFound is returned when an entity ID does not resolve.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned on registration with an email that is
// already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned on failed authentication. It does
// not distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrForbidden is returned when the caller does not own the resource
// they are trying to read or mutate.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidInput is returned for malformed domain input, such as a
// non-positive ticket count or an unrecognized booking status.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidTransition is returned when a status change is outside the
// booking lifecycle.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrCapacityExceeded is returned by the seat-level reservation when a
// requested seat is taken or the screen would be oversubscribed.
var ErrCapacityExceeded = errors.New("capacity exceeded")
