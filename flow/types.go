package flow

import "fmt"

// Name is the propagator name used in lemmas and metrics.
const Name = "flow"

// Algorithm selects the augmenting strategy.
type Algorithm uint8

const (
	// Dinic uses level graphs and blocking flows.
	Dinic Algorithm = iota

	// EdmondsKarp uses BFS shortest augmenting paths.
	EdmondsKarp
)

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Dinic:
		return "dinic"
	case EdmondsKarp:
		return "edmonds-karp"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm maps a configuration name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "", "dinic":
		return Dinic, nil
	case "edmonds-karp", "edmondskarp":
		return EdmondsKarp, nil
	default:
		return Dinic, fmt.Errorf("flow: unknown algorithm %q", s)
	}
}

// Options configures MaxFlow.
//   - Algorithm: augmenting strategy (default Dinic).
type Options struct {
	Algorithm Algorithm
}

// Option customizes Options.
type Option func(*Options)

// WithAlgorithm selects the augmenting strategy.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// DefaultOptions returns Options with Dinic selected.
func DefaultOptions() Options {
	return Options{Algorithm: Dinic}
}
