package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConstraint indicates the storage engine rejected a write because it
	// would violate a foreign-key or uniqueness constraint. Callers should
	// treat this as rejected input, not as an internal failure.
	ErrConstraint = errors.New("constraint violated")

	// ErrSessionClosed indicates an edit session has already been closed.
	ErrSessionClosed = errors.New("edit session closed")
)
