// Package torpedo provides the physical torpedo store fitted to a ship.
package torpedo

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/gt4500/internal/game/dice"
	"github.com/cory-johannsen/gt4500/internal/game/weapon"
)

// Store holds a finite number of torpedoes and fires them, jamming with a
// fixed probability.
//
// Invariant: 0 <= Count() <= Capacity().
type Store struct {
	role        weapon.Role
	capacity    int
	failureRate float64
	src         dice.Source

	mu     sync.Mutex
	loaded int
}

// NewStore returns a fully loaded Store.
//
// Precondition: capacity >= 0; 0 <= failureRate <= 1; src must be non-nil.
// Panics otherwise.
// Postcondition: Count() == Capacity() == capacity.
func NewStore(role weapon.Role, capacity int, failureRate float64, src dice.Source) *Store {
	if capacity < 0 {
		panic(fmt.Sprintf("torpedo: NewStore: capacity must be >= 0, got %d", capacity))
	}
	if failureRate < 0 || failureRate > 1 {
		panic(fmt.Sprintf("torpedo: NewStore: failure rate must be in [0, 1], got %v", failureRate))
	}
	if src == nil {
		panic("torpedo: NewStore: src must be non-nil")
	}
	return &Store{
		role:        role,
		capacity:    capacity,
		failureRate: failureRate,
		src:         src,
		loaded:      capacity,
	}
}

// Fire launches n torpedoes.
//
// Postcondition: returns *weapon.FireCountError if n < 1 or n > Count(), with
// nothing consumed. Otherwise a jam roll is made: on a jam nothing is consumed
// and (false, nil) is returned; on success Count() decreases by n.
func (s *Store) Fire(n int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > s.loaded {
		return false, &weapon.FireCountError{Requested: n, Available: s.loaded}
	}
	if dice.Chance(s.src, s.failureRate) {
		return false, nil
	}
	s.loaded -= n
	return true, nil
}

// IsEmpty reports whether no torpedoes remain.
func (s *Store) IsEmpty() bool {
	return s.Count() <= 0
}

// Count returns the number of loaded torpedoes.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Capacity returns the maximum number of torpedoes the store holds.
func (s *Store) Capacity() int { return s.capacity }

// Role returns the store's position on the ship.
func (s *Store) Role() weapon.Role { return s.role }

// Reload restores Count to Capacity.
//
// Postcondition: Count() == Capacity().
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = s.capacity
}
