package weapon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFiringMode is returned for a FiringMode that is neither single nor all.
var ErrUnknownFiringMode = errors.New("weapon: unknown firing mode")

// FiringMode selects how many torpedoes a fire request discharges.
type FiringMode string

const (
	// FiringModeSingle fires one torpedo from one store.
	FiringModeSingle FiringMode = "single"
	// FiringModeAll fires every available torpedo from both stores.
	FiringModeAll FiringMode = "all"
)

// String returns the mode name.
func (m FiringMode) String() string {
	return string(m)
}

// Valid reports whether m is a known mode.
func (m FiringMode) Valid() bool {
	return m == FiringModeSingle || m == FiringModeAll
}

// ParseFiringMode converts s into a FiringMode, ignoring case and surrounding space.
//
// Postcondition: returns a valid FiringMode or an error wrapping ErrUnknownFiringMode.
func ParseFiringMode(s string) (FiringMode, error) {
	m := FiringMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFiringMode, s)
	}
	return m, nil
}
