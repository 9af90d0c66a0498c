// SPDX-License-Identifier: MIT
//
// File: solver.go
// Role: engine context; literal allocation, clause intake and the
//       refinement loop that couples gini with the graph theories.
// Determinism:
//   - Variables are allocated densely in call order from one circuit.
//   - Watched variables are replayed in first-watch order.
// Concurrency:
//   - A Solver is not safe for concurrent use.

package solver

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/metrics"
	"github.com/katalvlaran/graphsat/theory"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// A cancellable solve polls the engine, doubling the wait from pollMin up
// to pollMax.
const (
	pollMin = 20 * time.Microsecond
	pollMax = 5 * time.Millisecond
)

// engine is the part of gini a Solver drives.
type engine interface {
	inter.Adder
	inter.Solvable
	inter.GoSolvable
	inter.Model
	Assume(ms ...z.Lit)
	Test(dst []z.Lit) (int, []z.Lit)
	Untest() int
}

// Solver owns one SAT engine, the circuit every literal is allocated from,
// and the graph theories attached to it.
type Solver struct {
	opts Options
	log  logrus.FieldLogger

	c       *logic.C
	sat     engine
	marks   []int8
	flushed int   // circuit nodes already encoded into sat
	maxVar  z.Var // largest variable sat knows

	reg      *theory.Registry
	coord    *theory.Coordinator
	graphs   []*Graph
	attached int // registry entries handed to propagators

	learned map[string]struct{}
	units   []z.Lit // unit clauses, repeated into every base scope
	buf     []z.Lit
	model   []bool // per-variable values of the last SAT model; nil otherwise
	rounds  int
}

// New returns an empty engine.
func New(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Solver{
		opts:    o,
		log:     o.Logger,
		c:       logic.NewC(),
		sat:     gini.New(),
		flushed: 2,
		maxVar:  1,
		reg:     theory.NewRegistry(),
		coord:   theory.NewCoordinator(),
		learned: make(map[string]struct{}),
		buf:     make([]z.Lit, 0, 64),
	}
}

// NewLit returns a fresh unconstrained literal.
func (s *Solver) NewLit() z.Lit { return s.c.Lit() }

// True returns the constant true literal; its negation is false.
func (s *Solver) True() z.Lit { return s.c.T }

// And returns a literal equivalent to the conjunction of ms.
func (s *Solver) And(ms ...z.Lit) z.Lit { return s.c.Ands(ms...) }

// Or returns a literal equivalent to the disjunction of ms.
func (s *Solver) Or(ms ...z.Lit) z.Lit { return s.c.Ors(ms...) }

// Implies returns a literal equivalent to a → b.
func (s *Solver) Implies(a, b z.Lit) z.Lit { return s.c.Implies(a, b) }

// Xor returns a literal equivalent to a ⊕ b.
func (s *Solver) Xor(a, b z.Lit) z.Lit { return s.c.Xor(a, b) }

// AssertTrue adds the unit clause m.
func (s *Solver) AssertTrue(m z.Lit) { s.AssertClause(m) }

// AssertClause adds the clause m1 ∨ … ∨ mk. An empty clause makes the
// engine unsatisfiable.
func (s *Solver) AssertClause(ms ...z.Lit) {
	if len(ms) == 1 {
		s.units = append(s.units, ms[0])
	}
	for _, m := range ms {
		s.sat.Add(m)
	}
	s.sat.Add(0)
}

// Value returns the value of m in the last satisfying model, or false when
// there is none or m was created after it.
func (s *Solver) Value(m z.Lit) bool {
	v := int(m.Var())
	if v >= len(s.model) {
		return false
	}
	return s.model[v] == m.IsPos()
}

// HasModel reports whether the last solve produced a model.
func (s *Solver) HasModel() bool { return s.model != nil }

// Rounds returns the refinement rounds used by the last solve.
func (s *Solver) Rounds() int { return s.rounds }

// Solve is SolveContext without cancellation.
func (s *Solver) Solve(assumptions ...z.Lit) (bool, error) {
	return s.SolveContext(context.Background(), assumptions...)
}

// SolveContext decides the clauses plus every graph atom under assumptions.
//
// Steps:
//  1. Freeze graphs and hand new atoms to their propagators.
//  2. Encode new circuit gates into the engine.
//  3. Propagate the theories inside engine test scopes, then solve; replay
//     the model over the watched variables and propagate again.
//  4. Add every lemma and go back to 3, until the theories agree with the
//     model.
//
// Returns (false, nil) when unsatisfiable; ErrRoundLimit, ErrIncomplete or
// the context error when no answer was reached.
func (s *Solver) SolveContext(ctx context.Context, assumptions ...z.Lit) (bool, error) {
	s.model = nil
	s.rounds = 0
	s.attach()
	s.flush()

	for {
		if err := ctx.Err(); err != nil {
			s.record(metrics.Unknown)
			return false, errors.Wrap(err, "solve cancelled")
		}
		if s.opts.MaxRounds > 0 && s.rounds >= s.opts.MaxRounds {
			s.record(metrics.Unknown)
			return false, errors.Wrapf(ErrRoundLimit, "after %d rounds", s.rounds)
		}
		s.rounds++

		v, lemmas := s.refine(ctx, assumptions)
		added := s.learn(lemmas)
		switch v {
		case proved:
			s.record(metrics.Sat)
			return true, nil
		case refuted:
			s.log.WithField("round", s.rounds).Debug("unsatisfiable")
			s.record(metrics.Unsat)
			return false, nil
		case undecided:
			s.record(metrics.Unknown)
			if err := ctx.Err(); err != nil {
				return false, errors.Wrap(err, "solve cancelled")
			}
			return false, ErrIncomplete
		}
		if added == 0 {
			panic("solver: conflict lemma was already learned")
		}
	}
}

// run solves once, polling ctx when it can be cancelled.
func (s *Solver) run(ctx context.Context) int {
	if ctx.Done() == nil {
		return s.sat.Solve()
	}
	conn := s.sat.GoSolve()
	wait := pollMin
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		if res, ok := conn.Test(); ok {
			return res
		}
		select {
		case <-ctx.Done():
			return conn.Stop()
		case <-timer.C:
		}
		wait = backoff(wait)
		timer.Reset(wait)
	}
}

// backoff returns the wait after d.
func backoff(d time.Duration) time.Duration {
	if d *= 2; d > pollMax {
		return pollMax
	}
	return d
}

// attach freezes every graph and gives atoms registered since the last call
// to their propagators. Any new attachment resets the theory trail so the new
// watchers see a full replay.
func (s *Solver) attach() {
	for _, g := range s.graphs {
		if !g.core.Frozen() {
			g.core.Freeze()
			s.log.WithFields(logrus.Fields{
				"graph": g.core.ID(),
				"nodes": g.core.NumNodes(),
				"edges": g.core.NumEdges(),
			}).Debug("graph frozen")
		}
	}

	changed := false
	for _, v := range s.reg.Since(s.attached) {
		a, _, _ := s.reg.Lookup(v.Pos())
		if a.Kind == theory.KindEdge {
			continue
		}
		if s.graphs[a.Graph].attachAtom(v.Pos(), a) {
			changed = true
		}
	}
	s.attached = s.reg.Len()
	if changed {
		s.coord.Backtrack(0)
	}
}

// install attaches p and routes every edge and weight variable of g to it.
func (s *Solver) install(p theory.Propagator, g *core.Graph, weightVars []z.Var) {
	s.coord.Attach(p)
	for _, e := range g.Edges() {
		s.coord.Watch(e.Lit.Var(), p)
	}
	for _, v := range weightVars {
		s.coord.Watch(v, p)
	}
}

// watchAtom routes the atom variable and its bound bits to p.
func (s *Solver) watchAtom(m z.Lit, bound core.Weight, p theory.Propagator) {
	s.coord.Watch(m.Var(), p)
	for _, b := range bound.Bits {
		s.coord.Watch(b.Var(), p)
	}
}

// flush encodes gates created since the last call and makes sure the engine
// knows every allocated variable.
func (s *Solver) flush() {
	n := s.c.Len()
	// The first call also asserts the constant true literal.
	if s.flushed < n || s.marks == nil {
		roots := make([]z.Lit, 0, n-s.flushed)
		for i := s.flushed; i < n; i++ {
			roots = append(roots, s.c.At(i))
		}
		s.marks, _ = s.c.CnfSince(s.sat, s.marks, roots...)
		s.flushed = n
	}
	// A tautology on the top variable grows the engine without constraining it.
	if top := z.Var(n - 1); top > s.maxVar {
		m := top.Pos()
		s.sat.Add(m)
		s.sat.Add(m.Not())
		s.sat.Add(0)
		s.maxVar = top
	}
}

// learn adds lemmas not added before and returns how many were new.
func (s *Solver) learn(lemmas []theory.Lemma) int {
	added := 0
	for _, l := range lemmas {
		if l.Conflict {
			s.opts.Metrics.Conflict(l.Source, 1)
		}
		key := clauseKey(l.Clause)
		if _, dup := s.learned[key]; dup {
			continue
		}
		s.learned[key] = struct{}{}
		s.AssertClause(l.Clause...)
		added++

		s.log.WithFields(logrus.Fields{
			"source":   l.Source,
			"conflict": l.Conflict,
			"size":     len(l.Clause),
		}).Trace("lemma")
	}
	return added
}

func (s *Solver) snapshot() {
	s.model = make([]bool, int(s.maxVar)+1)
	for v := z.Var(1); v <= s.maxVar; v++ {
		s.model[v] = s.sat.Value(v.Pos())
	}
}

func (s *Solver) record(result string) {
	s.opts.Metrics.Solve(result, s.rounds)
}

// clauseKey is an order-independent identity for a clause.
func clauseKey(ms []z.Lit) string {
	sorted := append([]z.Lit(nil), ms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return strings.Join(lo.Map(sorted, func(m z.Lit, _ int) string {
		return strconv.FormatUint(uint64(m), 10)
	}), " ")
}
