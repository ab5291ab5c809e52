package weapon

import (
	"fmt"

	"go.uber.org/zap"
)

// Preference records which store a single-shot request tries first.
type Preference int

const (
	// PreferPrimary tries the primary store first. It is the initial state.
	PreferPrimary Preference = iota
	// PreferSecondary tries the secondary store first.
	PreferSecondary
)

// String returns "primary" or "secondary".
func (p Preference) String() string {
	if p == PreferSecondary {
		return RoleSecondary.String()
	}
	return RolePrimary.String()
}

// Shot describes one fire attempt dispatched to a store.
type Shot struct {
	Mode  FiringMode
	Store Role
	Count int
	Fired bool
	Err   error
}

// Observer is notified after every fire attempt dispatched to a store.
// Observers must not call back into the controller.
type Observer interface {
	ObserveShot(Shot)
}

// Option configures a FiringController.
type Option func(*FiringController)

// WithLogger sets the logger used for dispatch debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *FiringController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an Observer for fire attempts.
func WithObserver(o Observer) Option {
	return func(c *FiringController) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

type slot struct {
	role  Role
	store AmmunitionStore
}

// FiringController dispatches fire requests to a primary and a secondary store.
//
// A FiringController is not safe for concurrent use; callers serialise access.
type FiringController struct {
	primary    slot
	secondary  slot
	preference Preference
	logger     *zap.Logger
	observers  []Observer
}

// NewFiringController wires the two stores into a controller that prefers the
// primary store for its first single-shot request.
//
// Precondition: primary and secondary must be non-nil (panics otherwise).
// Postcondition: Preference() == PreferPrimary.
func NewFiringController(primary, secondary AmmunitionStore, opts ...Option) *FiringController {
	if primary == nil || secondary == nil {
		panic("weapon: NewFiringController: primary and secondary stores must be non-nil")
	}
	c := &FiringController{
		primary:    slot{role: RolePrimary, store: primary},
		secondary:  slot{role: RoleSecondary, store: secondary},
		preference: PreferPrimary,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preference returns the store the next single-shot request tries first.
func (c *FiringController) Preference() Preference {
	return c.preference
}

// FireTorpedo fires according to mode.
//
// A jam is reported as (false, nil). An error raised by a store is returned
// unchanged, and in FiringModeAll it aborts the remaining dispatch.
//
// Postcondition: for FiringModeSingle, at most one store receives Fire(1) and
// Preference() afterwards names the store that did not receive it.
func (c *FiringController) FireTorpedo(mode FiringMode) (bool, error) {
	switch mode {
	case FiringModeSingle:
		return c.fireSingle()
	case FiringModeAll:
		return c.fireAll()
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownFiringMode, string(mode))
	}
}

func (c *FiringController) fireSingle() (bool, error) {
	first, second := c.primary, c.secondary
	if c.preference == PreferSecondary {
		first, second = c.secondary, c.primary
	}

	target := first
	if first.store.IsEmpty() {
		if second.store.IsEmpty() {
			c.logger.Debug("single fire refused: both stores empty")
			return false, nil
		}
		target = second
	}

	if target.role == RolePrimary {
		c.preference = PreferSecondary
	} else {
		c.preference = PreferPrimary
	}
	return c.dispatch(FiringModeSingle, target, 1)
}

func (c *FiringController) fireAll() (bool, error) {
	primaryFired, err := c.dispatch(FiringModeAll, c.primary, c.primary.store.Count())
	if err != nil {
		return false, err
	}
	secondaryFired, err := c.dispatch(FiringModeAll, c.secondary, c.secondary.store.Count())
	if err != nil {
		return false, err
	}
	return primaryFired && secondaryFired, nil
}

func (c *FiringController) dispatch(mode FiringMode, s slot, count int) (bool, error) {
	fired, err := s.store.Fire(count)

	c.logger.Debug("torpedo dispatch",
		zap.String("mode", mode.String()),
		zap.String("store", s.role.String()),
		zap.Int("count", count),
		zap.Bool("fired", fired),
		zap.Error(err),
	)
	shot := Shot{Mode: mode, Store: s.role, Count: count, Fired: fired, Err: err}
	for _, o := range c.observers {
		o.ObserveShot(shot)
	}
	return fired, err
}
