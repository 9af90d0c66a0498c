package theory

import (
	"fmt"

	"github.com/go-air/gini/z"

	"github.com/katalvlaran/graphsat/core"
)

// Kind tags the owner of a registered literal.
type Kind uint8

const (
	KindNone Kind = iota
	KindEdge
	KindReach
	KindDistance
	KindFlow
	KindAcyclic
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindEdge:
		return "edge"
	case KindReach:
		return "reach"
	case KindDistance:
		return "distance"
	case KindFlow:
		return "flow"
	case KindAcyclic:
		return "acyclic"
	default:
		return "none"
	}
}

// Atom is the tagged record behind a registered literal. Only the fields that
// are meaningful for Kind are set.
type Atom struct {
	Kind  Kind
	Graph int

	// Edge is set for KindEdge.
	Edge core.EdgeID

	// Source and Target are set for Reach, Distance and Flow.
	Source, Target core.NodeID

	// Backward marks reachesBackward.
	Backward bool

	// Via is the intermediate node of an onPath atom; Parts holds the two
	// reach atoms (Source→Via, Via→Target) the literal is the conjunction of.
	Via   core.NodeID
	Parts []z.Lit

	// Cmp and Bound are set for Distance and Flow comparisons.
	Cmp   Comparison
	Bound core.Weight

	// Directed is set for Acyclic.
	Directed bool
}

// OnPath reports whether the atom is an onPath conjunction.
func (a Atom) OnPath() bool { return len(a.Parts) > 0 }

// Registry maps variables to Atom records. Registration order is kept so
// callers can replay atoms deterministically.
type Registry struct {
	atoms map[z.Var]Atom
	order []z.Var
	keys  map[string]z.Lit
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		atoms: make(map[z.Var]Atom),
		keys:  make(map[string]z.Lit),
	}
}

// Register records a under the variable of m. A variable registers once;
// a second registration panics because it breaks atom identity.
func (r *Registry) Register(m z.Lit, a Atom) {
	v := m.Var()
	if _, dup := r.atoms[v]; dup {
		panic(fmt.Sprintf("theory: variable %s registered twice", v))
	}
	r.atoms[v] = a
	r.order = append(r.order, v)
}

// Lookup returns the atom behind m and whether m is its positive literal.
func (r *Registry) Lookup(m z.Lit) (a Atom, positive bool, ok bool) {
	a, ok = r.atoms[m.Var()]
	return a, m.IsPos(), ok
}

// Len returns the number of registered variables.
func (r *Registry) Len() int { return len(r.order) }

// Since returns the variables registered after the first n, in order.
func (r *Registry) Since(n int) []z.Var { return r.order[n:] }

// Intern returns the literal remembered under key, or remembers m under key
// and returns it. It gives semantically identical queries one identity.
func (r *Registry) Intern(key string, m func() z.Lit) z.Lit {
	if got, ok := r.keys[key]; ok {
		return got
	}
	lit := m()
	r.keys[key] = lit
	return lit
}
