// Package ship assembles a ship from its class definition, its two torpedo
// stores and the fire controller, and serialises fire requests against it.
package ship

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/gt4500/internal/game/dice"
	"github.com/cory-johannsen/gt4500/internal/game/torpedo"
	"github.com/cory-johannsen/gt4500/internal/game/weapon"
)

// FireRecord is one entry of the fire journal.
type FireRecord struct {
	ID        uuid.UUID
	ShipClass string
	Mode      weapon.FiringMode
	Fired     bool
	Error     string // invalid-dispatch message, empty when none
	CreatedAt time.Time
}

// Journal stores fire records. It is write-only from the ship's point of view.
type Journal interface {
	Record(ctx context.Context, rec FireRecord) error
}

// StoreStatus is a snapshot of one store.
type StoreStatus struct {
	Role     weapon.Role
	Count    int
	Capacity int
}

// Status is a snapshot of the ship's armament.
type Status struct {
	Class      string
	Primary    StoreStatus
	Secondary  StoreStatus
	Preference weapon.Preference
}

type reloader interface {
	Reload()
}

type capacityReporter interface {
	Capacity() int
}

// Option configures a Ship.
type Option func(*Ship)

// WithLogger sets the ship logger. It is also passed to the fire controller.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Ship) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithJournal records every fire request to j.
func WithJournal(j Journal) Option {
	return func(s *Ship) { s.journal = j }
}

// WithObserver forwards every store dispatch to o.
func WithObserver(o weapon.Observer) Option {
	return func(s *Ship) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// Ship is a vehicle with a primary and a secondary torpedo store.
// All methods are safe for concurrent use.
type Ship struct {
	class     *Class
	primary   weapon.AmmunitionStore
	secondary weapon.AmmunitionStore
	logger    *zap.Logger
	journal   Journal
	observers []weapon.Observer
	now       func() time.Time

	mu         sync.Mutex
	controller *weapon.FiringController
}

// New wires primary and secondary into a Ship of the given class.
//
// Precondition: class, primary and secondary must be non-nil.
// Postcondition: Status().Preference == weapon.PreferPrimary.
func New(class *Class, primary, secondary weapon.AmmunitionStore, opts ...Option) *Ship {
	if class == nil {
		panic("ship: New: class must be non-nil")
	}
	s := &Ship{
		class:     class,
		primary:   primary,
		secondary: secondary,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	ctrlOpts := []weapon.Option{weapon.WithLogger(s.logger)}
	for _, o := range s.observers {
		ctrlOpts = append(ctrlOpts, weapon.WithObserver(o))
	}
	s.controller = weapon.NewFiringController(primary, secondary, ctrlOpts...)
	return s
}

// Build creates a Ship of the given class fitted with fully loaded torpedo
// stores that jam with probability failureRate.
//
// Precondition: class must be valid; 0 <= failureRate <= 1; src must be non-nil.
func Build(class *Class, failureRate float64, src dice.Source, opts ...Option) *Ship {
	primary := torpedo.NewStore(weapon.RolePrimary, class.Primary.Capacity, failureRate, src)
	secondary := torpedo.NewStore(weapon.RoleSecondary, class.Secondary.Capacity, failureRate, src)
	return New(class, primary, secondary, opts...)
}

// Class returns the ship's class definition.
func (s *Ship) Class() *Class { return s.class }

// FireTorpedo fires according to mode and journals the outcome.
//
// A journal failure is logged and does not change the result. Errors raised
// by a store are returned exactly as the fire controller returned them.
func (s *Ship) FireTorpedo(ctx context.Context, mode weapon.FiringMode) (bool, error) {
	s.mu.Lock()
	fired, err := s.controller.FireTorpedo(mode)
	s.mu.Unlock()

	s.logger.Info("fire request",
		zap.String("class", s.class.ID),
		zap.String("mode", mode.String()),
		zap.Bool("fired", fired),
		zap.Error(err),
	)

	if s.journal != nil {
		rec := FireRecord{
			ID:        uuid.New(),
			ShipClass: s.class.ID,
			Mode:      mode,
			Fired:     fired,
			CreatedAt: s.now().UTC(),
		}
		if err != nil {
			rec.Error = err.Error()
		}
		if jerr := s.journal.Record(ctx, rec); jerr != nil {
			s.logger.Warn("journaling fire request", zap.Error(jerr))
		}
	}
	return fired, err
}

// Status returns a snapshot of both stores and the alternation state.
func (s *Ship) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Class:      s.class.ID,
		Primary:    storeStatus(weapon.RolePrimary, s.primary),
		Secondary:  storeStatus(weapon.RoleSecondary, s.secondary),
		Preference: s.controller.Preference(),
	}
}

// Reload refills every store that supports reloading.
//
// Postcondition: returns the number of stores reloaded.
func (s *Ship) Reload() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range []weapon.AmmunitionStore{s.primary, s.secondary} {
		if r, ok := st.(reloader); ok {
			r.Reload()
			n++
		}
	}
	s.logger.Info("stores reloaded", zap.String("class", s.class.ID), zap.Int("stores", n))
	return n
}

func storeStatus(role weapon.Role, st weapon.AmmunitionStore) StoreStatus {
	ss := StoreStatus{Role: role, Count: st.Count()}
	if c, ok := st.(capacityReporter); ok {
		ss.Capacity = c.Capacity()
	}
	return ss
}
