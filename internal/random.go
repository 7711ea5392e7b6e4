package internal

import (
	"github.com/google/uuid"
)

// NewSessionID mints a collision-resistant opaque session identifier.
// The value is a 128-bit random UUID in canonical string form; callers
// treat it as opaque and never parse it back.
func NewSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
