package domain

import "github.com/google/uuid"

// NewID generates a random unique identifier for a new entity.
// Identifiers are opaque strings: immutable after creation and never
// interpreted as display values.
func NewID() string {
	return uuid.New().String()
}
