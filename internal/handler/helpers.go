package handler

import (
	"github.com/google/uuid"
)

// isUUIDv4 accepts only the canonical 36-char UUIDv4 form; ids in any other
// shape are rejected before they can reach the store or an upstream API.
func isUUIDv4(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}
