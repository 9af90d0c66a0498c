// SPDX-License-Identifier: MIT
//
// File: search.go
// Role: one refinement round. The theories propagate inside engine test
//       scopes before the engine searches, so most atoms are settled or
//       supported by the time a model comes back.
// Determinism:
//   - Scopes are opened in propagation order; suggestions follow attach order.

package solver

import (
	"context"

	"github.com/go-air/gini/z"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/graphsat/theory"
)

// verdict is how a round ended.
type verdict int

const (
	undecided verdict = iota // the engine gave no answer
	proved                   // a model the theories accept
	refuted                  // unsatisfiable under the assumptions
	refine                   // lemmas were found; run another round
)

// round tracks the engine test scopes opened by one refinement round.
// levels[i] is the theory trail level reached inside scope i+1.
type round struct {
	s      *Solver
	levels []int
	lemmas []theory.Lemma
	buf    []z.Lit
}

// test assumes ms and opens a scope for them.
func (r *round) test(ms []z.Lit) (int, []z.Lit) {
	r.s.sat.Assume(ms...)
	res, out := r.s.sat.Test(r.buf[:0])
	r.levels = append(r.levels, r.s.coord.Level())
	if out != nil {
		r.buf = out
	}
	return res, out
}

// drop closes scopes until n remain and backtracks the theories with them.
func (r *round) drop(n int) {
	for len(r.levels) > n {
		r.s.sat.Untest()
		r.levels = r.levels[:len(r.levels)-1]
	}
	level := 0
	if n > 0 {
		level = r.levels[n-1]
	}
	r.s.coord.Backtrack(level)
}

// close releases every scope; the theory trail is left as it is.
func (r *round) close() {
	for ; len(r.levels) > 0; r.levels = r.levels[:len(r.levels)-1] {
		r.s.sat.Untest()
	}
}

// propagate runs the theories and keeps the lemmas worth learning.
func (r *round) propagate() theory.Outcome {
	out := r.s.coord.Propagate(true)
	for name, n := range out.Implied {
		r.s.opts.Metrics.Propagated(name, n)
	}
	for _, l := range out.Lemmas {
		if l.Conflict || r.s.opts.LearnPropagations {
			r.lemmas = append(r.lemmas, l)
		}
	}
	return out
}

// guide pushes theory knowledge into the engine before it searches.
//
// Steps:
//  1. Test the assumptions in a base scope; extend the theory trail with
//     them, the unit clauses and every engine implication.
//  2. Propagate the theories. Fresh implications plus the suggestions of
//     atoms still lacking support are tested in the next scope, and the
//     engine's answer extends the trail at one new level.
//  3. Stop at a fixpoint or when a scope fails; a failed scope is closed.
//
// refuted is returned when the base scope fails in the engine, refine when
// it fails in the theories with a lemma not learned before. Otherwise the
// result is undecided and the engine has to search.
func (r *round) guide(assumptions []z.Lit) verdict {
	s := r.s
	s.coord.Backtrack(0)
	res, out := r.test(assumptions)
	if res == unsatisfiable {
		return refuted
	}
	base := make([]z.Lit, 0, len(assumptions)+len(s.units)+len(out))
	base = append(append(append(base, assumptions...), s.units...), out...)
	if _, ok := s.coord.Extend(base); !ok {
		return refuted
	}
	r.levels[0] = s.coord.Level()

	for mark := s.coord.Trail().Len(); ; {
		o := r.propagate()
		if o.Conflicts() > 0 {
			if len(r.levels) == 1 && r.fresh(o.Lemmas) {
				return refine
			}
			r.drop(max(len(r.levels)-1, 1))
			return undecided
		}

		tr := s.coord.Trail()
		next := make([]z.Lit, 0, tr.Len()-mark)
		for i := mark; i < tr.Len(); i++ {
			next = append(next, tr.At(i))
		}
		hints := s.coord.Suggest()
		if len(next) == 0 && len(hints) == 0 {
			return undecided
		}

		n := len(r.levels)
		res, out := r.test(append(next, hints...))
		if res == unsatisfiable {
			r.drop(n)
			return undecided
		}
		if _, ok := s.coord.Extend(append(hints, out...)); !ok {
			r.drop(n)
			return undecided
		}
		r.levels[n] = s.coord.Level()
		mark = s.coord.Trail().Len()

		s.log.WithFields(logrus.Fields{
			"scope":   n + 1,
			"implied": len(next),
			"hints":   len(hints),
		}).Trace("guided scope")
	}
}

// fresh reports whether some conflict lemma has not been learned yet.
func (r *round) fresh(lemmas []theory.Lemma) bool {
	for _, l := range lemmas {
		if !l.Conflict {
			continue
		}
		if _, dup := r.s.learned[clauseKey(l.Clause)]; !dup {
			return true
		}
	}
	return false
}

// refine runs one round: guided propagation, one engine search and a check
// of the model against every theory. The lemmas are returned for learning
// once all scopes are closed.
func (s *Solver) refine(ctx context.Context, assumptions []z.Lit) (verdict, []theory.Lemma) {
	r := &round{s: s, buf: s.buf}
	defer func() { s.buf = r.buf[:0] }()
	defer r.close()

	switch r.guide(assumptions) {
	case refuted:
		return refuted, r.lemmas
	case refine:
		s.log.WithFields(logrus.Fields{
			"round":     s.rounds,
			"scopes":    1,
			"conflicts": lo.CountBy(r.lemmas, func(l theory.Lemma) bool { return l.Conflict }),
			"lemmas":    len(r.lemmas),
		}).Debug("refinement round")
		return refine, r.lemmas
	}

	res := s.run(ctx)
	if res == unsatisfiable && len(r.levels) > 1 {
		// The suggestions may have been wrong; only the assumptions count.
		r.drop(1)
		res = s.run(ctx)
	}
	switch res {
	case unsatisfiable:
		return refuted, r.lemmas
	case satisfiable:
	default:
		return undecided, r.lemmas
	}

	scopes := len(r.levels)
	reused := s.coord.Replay(s.sat.Value)
	out := s.coord.Propagate(s.opts.LearnPropagations)
	for name, n := range out.Implied {
		s.opts.Metrics.Propagated(name, n)
	}
	conflicts := out.Conflicts()
	lemmas := append(r.lemmas, out.Lemmas...)

	s.log.WithFields(logrus.Fields{
		"round":     s.rounds,
		"scopes":    scopes,
		"reused":    reused,
		"conflicts": conflicts,
		"lemmas":    len(lemmas),
	}).Debug("refinement round")

	if conflicts > 0 {
		return refine, lemmas
	}
	s.snapshot()
	return proved, lemmas
}
