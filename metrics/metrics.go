// Package metrics exposes solver counters in Prometheus form.
//
// A Recorder owns its collectors and registers them on the Registerer it is
// given. A nil *Recorder is valid and records nothing, so callers never need
// to guard their calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultLabel     = "result"
	PropagatorLabel = "propagator"

	Sat     = "sat"
	Unsat   = "unsat"
	Unknown = "unknown"
)

// Recorder collects solve outcomes and theory activity.
type Recorder struct {
	solves       *prometheus.CounterVec
	conflicts    *prometheus.CounterVec
	propagations *prometheus.CounterVec
	rounds       prometheus.Histogram
}

// NewRecorder creates the collectors and registers them on reg. A nil reg
// selects a private registry.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphsat_solve_total",
				Help: "Number of solve calls by result",
			},
			[]string{ResultLabel},
		),
		conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphsat_theory_conflicts_total",
				Help: "Number of conflict clauses produced by each graph propagator",
			},
			[]string{PropagatorLabel},
		),
		propagations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphsat_theory_propagations_total",
				Help: "Number of literals implied by each graph propagator",
			},
			[]string{PropagatorLabel},
		),
		rounds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "graphsat_refinement_rounds",
				Help:    "Refinement rounds needed by one solve call",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}
	for _, c := range []prometheus.Collector{r.solves, r.conflicts, r.propagations, r.rounds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Solve records one finished solve call.
func (r *Recorder) Solve(result string, rounds int) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(result).Inc()
	r.rounds.Observe(float64(rounds))
}

// Conflict records n conflicts raised by propagator.
func (r *Recorder) Conflict(propagator string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.conflicts.WithLabelValues(propagator).Add(float64(n))
}

// Propagated records n literals implied by propagator.
func (r *Recorder) Propagated(propagator string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.propagations.WithLabelValues(propagator).Add(float64(n))
}
