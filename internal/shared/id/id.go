// Package id generates and validates the 128-bit identifiers of complaints.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New returns a random (version 4) UUID in canonical form.
func New() string {
	return uuid.NewString()
}

// Normalize parses s as a UUID and returns its canonical lower-case form.
func Normalize(s string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return u.String(), nil
}
