package solver

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/graphsat/flow"
	"github.com/katalvlaran/graphsat/metrics"
)

// Options configures a Solver.
type Options struct {
	Logger            logrus.FieldLogger // Receives round and lemma logs
	Metrics           *metrics.Recorder  // Nil records nothing
	MaxRounds         int                // Refinement rounds per solve; 0 is unbounded
	LearnPropagations bool               // Also learn clauses of propagations that agree with the model
	FlowAlgorithm     flow.Algorithm     // Augmenting strategy of every flow propagator
	AcyclicFlows      bool               // GetEdgeFlow cancels flow cycles by default
}

// Option represents a functional option for configuring a Solver.
type Option func(*Options)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Options) { o.Metrics = r }
}

// WithMaxRounds bounds the refinement rounds of one solve call.
// Panics if n is negative.
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("solver: WithMaxRounds requires n >= 0")
		}
		o.MaxRounds = n
	}
}

// WithLearnPropagations adds the clauses of consistent theory implications
// to the engine, which usually shortens later solves.
func WithLearnPropagations(on bool) Option {
	return func(o *Options) { o.LearnPropagations = on }
}

// WithFlowAlgorithm selects the max-flow augmenting strategy.
func WithFlowAlgorithm(a flow.Algorithm) Option {
	return func(o *Options) { o.FlowAlgorithm = a }
}

// WithAcyclicFlowWitness makes GetEdgeFlow report cycle-free flows.
func WithAcyclicFlowWitness(on bool) Option {
	return func(o *Options) { o.AcyclicFlows = on }
}

// DefaultOptions returns the options used when none are given: a silent
// logger, no metrics, unbounded rounds and Dinic augmentation.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.WarnLevel)

	return Options{
		Logger:        l,
		FlowAlgorithm: flow.Dinic,
	}
}
