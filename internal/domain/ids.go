package domain

import "github.com/google/uuid"

// NewID returns a fresh identifier. Identifiers are never reused.
func NewID() string {
	return uuid.New().String()
}
