package theory

import (
	"fmt"

	"github.com/go-air/gini/z"
)

// Value is the assignment of a literal. The numeric values follow gini's
// result convention: 1 true, -1 false, 0 unknown.
type Value int8

const (
	Unknown Value = 0
	True    Value = 1
	False   Value = -1
)

// Not returns the value of the negated literal.
func (v Value) Not() Value { return -v }

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Of converts a Boolean to a Value.
func Of(b bool) Value {
	if b {
		return True
	}
	return False
}

// Reader gives propagators read access to the current partial assignment.
type Reader interface {
	// Value returns the assignment of m, taking polarity into account.
	Value(m z.Lit) Value

	// Level returns the decision level at which v was assigned, or -1.
	Level(v z.Var) int
}

// Comparison relates a computed quantity q to a bound b.
type Comparison uint8

const (
	GEQ Comparison = iota // q ≥ b
	GT                    // q > b
	LEQ                   // q ≤ b
	LT                    // q < b
)

// Valid reports whether c is one of the four comparisons.
func (c Comparison) Valid() bool { return c <= LT }

// Negate returns the comparison that holds exactly when c does not.
func (c Comparison) Negate() Comparison {
	switch c {
	case GEQ:
		return LT
	case GT:
		return LEQ
	case LEQ:
		return GT
	default:
		return GEQ
	}
}

// Holds evaluates q c b.
func (c Comparison) Holds(q, b int64) bool {
	switch c {
	case GEQ:
		return q >= b
	case GT:
		return q > b
	case LEQ:
		return q <= b
	default:
		return q < b
	}
}

// String implements fmt.Stringer.
func (c Comparison) String() string {
	switch c {
	case GEQ:
		return ">="
	case GT:
		return ">"
	case LEQ:
		return "<="
	case LT:
		return "<"
	default:
		return fmt.Sprintf("Comparison(%d)", uint8(c))
	}
}

// Propagator is a graph theory driven by the coordinator.
//
// All calls are synchronous and single-threaded. Assign is called once per
// assignment of a watched variable, with non-decreasing levels between
// backtracks. Backtrack(level) retracts everything assigned above level.
// Propagate returns literals implied by the current state; it may return
// literals that are already assigned. Explain(m) is valid for any m returned
// by the latest Propagate until the next Assign or Backtrack.
type Propagator interface {
	// Name identifies the propagator in logs and metrics.
	Name() string

	Assign(m z.Lit, level int)
	Backtrack(level int)
	Propagate() []z.Lit
	Explain(m z.Lit) []z.Lit
}

// Suggester is implemented by propagators that can name literals which, made
// true, would let an atom already true on the trail hold. Suggestions are
// hints for the engine's next model and carry no reasons.
type Suggester interface {
	Suggest() []z.Lit
}
