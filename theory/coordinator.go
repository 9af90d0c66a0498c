package theory

import (
	"github.com/go-air/gini/z"
	"github.com/samber/lo"
)

// Lemma is a clause produced by a propagator. Clause[0] is the implied
// literal; the remaining literals are the negated reasons.
type Lemma struct {
	Source   string
	Clause   []z.Lit
	Conflict bool
}

// Outcome is the result of one Coordinator.Propagate call.
type Outcome struct {
	// Lemmas holds every conflict clause, plus the clauses of consistent
	// implications when learning was requested.
	Lemmas []Lemma

	// Implied counts, per propagator name, the implied literals that agreed
	// with or extended the trail.
	Implied map[string]int
}

// Conflicts returns the number of conflict lemmas.
func (o Outcome) Conflicts() int {
	return lo.CountBy(o.Lemmas, func(l Lemma) bool { return l.Conflict })
}

// Coordinator routes assignments to propagators through a per-variable
// dispatch table and keeps the shared trail.
type Coordinator struct {
	trail  *Trail
	props  []Propagator
	watch  map[z.Var][]Propagator
	order  []z.Var
	reason map[z.Var]Propagator
}

// NewCoordinator returns a coordinator with an empty trail.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		trail:  NewTrail(),
		watch:  make(map[z.Var][]Propagator),
		reason: make(map[z.Var]Propagator),
	}
}

// Reader returns the trail as a Reader for propagators.
func (c *Coordinator) Reader() Reader { return c.trail }

// Trail exposes the trail for inspection.
func (c *Coordinator) Trail() *Trail { return c.trail }

// Attach registers p for Propagate and Backtrack calls.
func (c *Coordinator) Attach(p Propagator) {
	if lo.Contains(c.props, p) {
		return
	}
	c.props = append(c.props, p)
}

// Watch routes assignments of v to p. The first watch of v appends v to the
// replay order.
func (c *Coordinator) Watch(v z.Var, p Propagator) {
	ws, seen := c.watch[v]
	if !seen {
		c.order = append(c.order, v)
	}
	if lo.Contains(ws, p) {
		return
	}
	c.watch[v] = append(ws, p)
}

// Level returns the current decision level.
func (c *Coordinator) Level() int {
	if n := c.trail.Len(); n > 0 {
		return c.trail.LevelAt(n - 1)
	}
	return 0
}

// Assign makes m true at level and notifies the propagators watching it.
func (c *Coordinator) Assign(m z.Lit, level int) {
	c.trail.Push(m, level)
	for _, p := range c.watch[m.Var()] {
		p.Assign(m, level)
	}
}

// Backtrack retracts every assignment above level in the trail and in all
// propagators.
func (c *Coordinator) Backtrack(level int) {
	n := c.trail.Len()
	for i := n - 1; i >= 0 && c.trail.LevelAt(i) > level; i-- {
		delete(c.reason, c.trail.At(i).Var())
	}
	if c.trail.PopTo(level) == 0 {
		return
	}
	for _, p := range c.props {
		p.Backtrack(level)
	}
}

// Replay brings the trail in line with a total model over the watched
// variables. The longest trail prefix that the model satisfies is kept; the
// unassigned variables are then assigned in watch order, one level each.
// Returns the number of reused assignments.
func (c *Coordinator) Replay(model func(z.Lit) bool) int {
	keep := 0
	for keep < c.trail.Len() && model(c.trail.At(keep)) {
		keep++
	}
	if keep < c.trail.Len() {
		c.Backtrack(c.trail.LevelAt(keep) - 1)
		keep = c.trail.Len()
	}
	for _, v := range c.order {
		if c.trail.Value(v.Pos()) == Unknown {
			c.Assign(c.polarized(v, model), c.Level()+1)
		}
	}

	return keep
}

// Extend assigns the watched literals of ms that are not yet on the trail, all
// at one new level, and returns that level. When the negation of some literal
// is already on the trail nothing is assigned and ok is false.
func (c *Coordinator) Extend(ms []z.Lit) (level int, ok bool) {
	level = c.Level() + 1
	var fresh []z.Lit
	for _, m := range ms {
		if _, watched := c.watch[m.Var()]; !watched {
			continue
		}
		switch c.trail.Value(m) {
		case False:
			return level, false
		case Unknown:
			if !lo.Contains(fresh, m) {
				fresh = append(fresh, m)
			}
		}
	}
	for _, m := range fresh {
		c.Assign(m, level)
	}
	return level, true
}

// Suggest collects the suggestions of every propagator implementing
// Suggester, dropping literals already assigned. When two propagators
// disagree on a variable the earlier suggestion wins.
func (c *Coordinator) Suggest() []z.Lit {
	var out []z.Lit
	seen := make(map[z.Var]struct{})
	for _, p := range c.props {
		sg, ok := p.(Suggester)
		if !ok {
			continue
		}
		for _, m := range sg.Suggest() {
			if _, dup := seen[m.Var()]; dup || c.trail.Value(m) != Unknown {
				continue
			}
			seen[m.Var()] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

func (c *Coordinator) polarized(v z.Var, model func(z.Lit) bool) z.Lit {
	m := v.Pos()
	if !model(m) {
		return m.Not()
	}
	return m
}

// Propagate runs every propagator to a fixpoint.
//
// Steps:
//  1. Ask each propagator for implied literals.
//  2. An implied literal that is false on the trail is a conflict: explain it
//     and record the clause. Propagation stops after the first conflicting
//     propagator.
//  3. When learn is set, implied literals already true are explained as well.
//  4. Unknown implied literals are assigned at the current level with the
//     propagator as reason; the loop repeats until nothing new is assigned.
func (c *Coordinator) Propagate(learn bool) Outcome {
	out := Outcome{Implied: make(map[string]int)}
	seen := make(map[z.Lit]struct{})

	for changed := true; changed; {
		changed = false
		for _, p := range c.props {
			implied := p.Propagate()

			// Explanations are taken before any new assignment reaches p.
			var fresh []z.Lit
			conflict := false
			for _, m := range implied {
				switch c.trail.Value(m) {
				case False:
					out.Lemmas = append(out.Lemmas, c.lemma(p, m, true))
					conflict = true
				case True:
					if _, done := seen[m]; done {
						continue
					}
					if _, own := c.reason[m.Var()]; own {
						continue
					}
					seen[m] = struct{}{}
					out.Implied[p.Name()]++
					if learn {
						out.Lemmas = append(out.Lemmas, c.lemma(p, m, false))
					}
				default:
					if learn {
						out.Lemmas = append(out.Lemmas, c.lemma(p, m, false))
					}
					fresh = append(fresh, m)
				}
			}
			if conflict {
				return out
			}

			level := c.Level()
			for _, m := range fresh {
				if c.trail.Value(m) != Unknown {
					continue
				}
				c.reason[m.Var()] = p
				c.Assign(m, level)
				seen[m] = struct{}{}
				out.Implied[p.Name()]++
				changed = true
			}
		}
	}

	return out
}

func (c *Coordinator) lemma(p Propagator, m z.Lit, conflict bool) Lemma {
	reasons := lo.Uniq(p.Explain(m))
	clause := make([]z.Lit, 0, len(reasons)+1)
	clause = append(clause, m)
	for _, r := range reasons {
		clause = append(clause, r.Not())
	}
	return Lemma{Source: p.Name(), Clause: clause, Conflict: conflict}
}
