package theory

import (
	"github.com/go-air/gini/z"
)

// Trail is the ordered partial assignment. The literal at position i was
// assigned at Levels()[i]; levels are non-decreasing along the trail.
type Trail struct {
	vals   []Value // indexed by variable, positive polarity
	levels []int   // indexed by variable
	lits   []z.Lit
	at     []int // level of lits[i]
}

// NewTrail returns an empty trail.
func NewTrail() *Trail { return &Trail{} }

func (t *Trail) grow(v z.Var) {
	for int(v) >= len(t.vals) {
		t.vals = append(t.vals, Unknown)
		t.levels = append(t.levels, -1)
	}
}

// Value implements Reader.
func (t *Trail) Value(m z.Lit) Value {
	v := m.Var()
	if int(v) >= len(t.vals) {
		return Unknown
	}
	if m.IsPos() {
		return t.vals[v]
	}
	return t.vals[v].Not()
}

// Level implements Reader.
func (t *Trail) Level(v z.Var) int {
	if int(v) >= len(t.levels) {
		return -1
	}
	return t.levels[v]
}

// Push makes m true at level. Pushing an assigned variable panics.
func (t *Trail) Push(m z.Lit, level int) {
	v := m.Var()
	t.grow(v)
	if t.vals[v] != Unknown {
		panic("theory: variable " + v.String() + " assigned twice")
	}
	t.vals[v] = Of(m.IsPos())
	t.levels[v] = level
	t.lits = append(t.lits, m)
	t.at = append(t.at, level)
}

// PopTo unassigns every literal with level > level and returns how many were
// removed.
func (t *Trail) PopTo(level int) int {
	i := len(t.lits)
	for i > 0 && t.at[i-1] > level {
		i--
		v := t.lits[i].Var()
		t.vals[v] = Unknown
		t.levels[v] = -1
	}
	n := len(t.lits) - i
	t.lits = t.lits[:i]
	t.at = t.at[:i]

	return n
}

// Len returns the number of assigned literals.
func (t *Trail) Len() int { return len(t.lits) }

// At returns the i-th assigned literal.
func (t *Trail) At(i int) z.Lit { return t.lits[i] }

// LevelAt returns the level of the i-th assigned literal.
func (t *Trail) LevelAt(i int) int { return t.at[i] }
