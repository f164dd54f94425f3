package types

import "errors"

// Store operation errors. Every failure surfaced by the backend wraps
// one of these so callers can branch with errors.Is.
var (
	// ErrNotFound is returned when reinforcing, contradicting, or
	// looking up an entity by an id that does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidScope is returned when a write supplies a scope outside
	// {personal, team, org}. The write is rejected before any row is
	// created.
	ErrInvalidScope = errors.New("invalid scope value")

	// ErrSessionUnknown is returned when a write carries a session id
	// with no matching row in the sessions table.
	ErrSessionUnknown = errors.New("unknown session")

	// ErrInvalidData is returned when a write is missing a required
	// field, such as a fix with no error text.
	ErrInvalidData = errors.New("invalid entity data")
)
