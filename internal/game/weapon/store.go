// Package weapon provides the torpedo fire control for a ship carrying two
// interchangeable ammunition stores.
package weapon

import (
	"errors"
	"fmt"
)

// ErrInvalidFireCount is the sentinel wrapped by every FireCountError.
var ErrInvalidFireCount = errors.New("weapon: invalid fire count")

// FireCountError reports a fire request a store cannot satisfy.
type FireCountError struct {
	// Requested is the number of torpedoes the caller asked for.
	Requested int
	// Available is the number of torpedoes the store held at the time.
	Available int
}

// Error implements error.
func (e *FireCountError) Error() string {
	return fmt.Sprintf("%v: requested %d, available %d", ErrInvalidFireCount, e.Requested, e.Available)
}

// Unwrap returns ErrInvalidFireCount so callers may use errors.Is.
func (e *FireCountError) Unwrap() error {
	return ErrInvalidFireCount
}

// Role identifies a store's position on the ship.
type Role int

const (
	// RolePrimary is the primary torpedo store.
	RolePrimary Role = iota
	// RoleSecondary is the secondary torpedo store.
	RoleSecondary
)

// String returns "primary" or "secondary".
func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// AmmunitionStore is the capability the fire controller consumes.
type AmmunitionStore interface {
	// Fire attempts to discharge count torpedoes.
	//
	// Postcondition: returns (false, nil) on a mechanical jam; returns an error
	// wrapping ErrInvalidFireCount when count cannot be satisfied.
	Fire(count int) (bool, error)
	// IsEmpty reports whether the store holds no torpedoes. It has no side effects.
	IsEmpty() bool
	// Count returns the number of torpedoes available. It has no side effects.
	//
	// Postcondition: result >= 0.
	Count() int
}
