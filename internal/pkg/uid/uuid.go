// Package uid provides the identifier generators used across the service:
// time-ordered UUID strings for tokens and correlation IDs, and snowflake
// numbers for database primary keys.
package uid

import "github.com/google/uuid"

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}

// UUID generates RFC 4122 UUID strings, preferring the time-ordered v7 form.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString() // fallback: uuidV4
	}

	return id.String()
}
