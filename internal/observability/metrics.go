package observability

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cory-johannsen/gt4500/internal/game/ship"
	"github.com/cory-johannsen/gt4500/internal/game/weapon"
)

// Shot outcomes used as the "outcome" label.
const (
	OutcomeFired    = "fired"
	OutcomeJammed   = "jammed"
	OutcomeRejected = "rejected"
)

// FireMetrics records torpedo dispatches as Prometheus metrics.
// It implements weapon.Observer.
type FireMetrics struct {
	shots    *prometheus.CounterVec
	launched *prometheus.CounterVec
}

// NewFireMetrics registers the dispatch counters on reg. A nil reg defaults to
// the global Prometheus registerer. Collectors already registered by an
// earlier call are reused.
//
// Postcondition: Returns FireMetrics or a registration error.
func NewFireMetrics(reg prometheus.Registerer) (*FireMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	shots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gt4500",
		Name:      "torpedo_shots_total",
		Help:      "Fire attempts dispatched to a torpedo store, by outcome",
	}, []string{"mode", "store", "outcome"})
	launched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gt4500",
		Name:      "torpedoes_launched_total",
		Help:      "Torpedoes that left a store",
	}, []string{"store"})

	var err error
	if shots, err = register(reg, shots); err != nil {
		return nil, err
	}
	if launched, err = register(reg, launched); err != nil {
		return nil, err
	}
	return &FireMetrics{shots: shots, launched: launched}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec), nil
		}
		return nil, err
	}
	return c, nil
}

// ObserveShot implements weapon.Observer.
func (m *FireMetrics) ObserveShot(s weapon.Shot) {
	outcome := OutcomeFired
	switch {
	case s.Err != nil:
		outcome = OutcomeRejected
	case !s.Fired:
		outcome = OutcomeJammed
	}
	m.shots.WithLabelValues(s.Mode.String(), s.Store.String(), outcome).Inc()
	if outcome == OutcomeFired {
		m.launched.WithLabelValues(s.Store.String()).Add(float64(s.Count))
	}
}

// RegisterStoreLevels exposes the loaded torpedo count of each store as a
// gauge read from status at scrape time.
//
// Precondition: status must be safe to call from the scrape goroutine.
func RegisterStoreLevels(reg prometheus.Registerer, status func() ship.Status) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gauges := []prometheus.GaugeFunc{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "gt4500",
			Name:        "store_torpedoes",
			Help:        "Torpedoes currently loaded in a store",
			ConstLabels: prometheus.Labels{"store": weapon.RolePrimary.String()},
		}, func() float64 { return float64(status().Primary.Count) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "gt4500",
			Name:        "store_torpedoes",
			Help:        "Torpedoes currently loaded in a store",
			ConstLabels: prometheus.Labels{"store": weapon.RoleSecondary.String()},
		}, func() float64 { return float64(status().Secondary.Count) }),
	}
	for _, g := range gauges {
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSessionGauge exposes the number of connected console clients.
func RegisterSessionGauge(reg prometheus.Registerer, sessions func() int) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "gt4500",
		Name:      "console_sessions",
		Help:      "Connected remote console clients",
	}, func() float64 { return float64(sessions()) }))
}

// MetricsHandler returns an HTTP handler serving the metrics in g.
// A nil g serves the default gatherer.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
