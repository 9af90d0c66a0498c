package solver

import (
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/theory"
)

// GetPathNodes returns the nodes of the witness path of a reach atom that
// is true in the last model, from source to target. For ReachesBackward the
// path runs from source against edge direction; for OnPath it is the path
// to via followed by the path from via.
func (g *Graph) GetPathNodes(m z.Lit) ([]NodeID, error) {
	nodes, _, err := g.path(m)
	return nodes, err
}

// GetPathEdges returns the control literals of the witness path of m, in
// the order GetPathNodes visits them.
func (g *Graph) GetPathEdges(m z.Lit) ([]z.Lit, error) {
	_, edges, err := g.path(m)
	if err != nil {
		return nil, err
	}
	return lo.Map(edges, func(e core.EdgeID, _ int) z.Lit { return g.core.Edge(e).Lit }), nil
}

func (g *Graph) path(m z.Lit) ([]NodeID, []core.EdgeID, error) {
	a, err := g.atom(m, theory.KindReach)
	if err != nil {
		return nil, nil, err
	}
	if !m.IsPos() {
		return nil, nil, errors.Wrap(ErrWrongPropagatorKind, "negated reach atom has no path")
	}
	if err := g.s.modelTrue(m); err != nil {
		return nil, nil, err
	}

	if !a.OnPath() {
		nodes, edges, ok := g.reach.Path(m)
		if !ok {
			panic("solver: true reach atom without a path")
		}
		return nodes, edges, nil
	}
	n1, e1, ok1 := g.reach.Path(a.Parts[0])
	n2, e2, ok2 := g.reach.Path(a.Parts[1])
	if !ok1 || !ok2 {
		panic("solver: true onPath atom without a path")
	}
	return append(n1, n2[1:]...), append(e1, e2...), nil
}

// GetMaxFlow returns the maximum flow of the flow atom m in the last model.
func (g *Graph) GetMaxFlow(m z.Lit) (int64, error) {
	if _, err := g.atom(m, theory.KindFlow); err != nil {
		return 0, err
	}
	if err := g.s.modelTrue(m); err != nil {
		return 0, err
	}
	v, ok := g.flow.Value(m)
	if !ok {
		panic("solver: attached flow atom unknown to its propagator")
	}
	return v, nil
}

// GetEdgeFlow returns the flow on edge e in the witness of the flow atom m.
// Flow cycles are cancelled when the solver was built with
// WithAcyclicFlowWitness.
func (g *Graph) GetEdgeFlow(m, e z.Lit) (int64, error) {
	return g.GetEdgeFlowWith(m, e, g.s.opts.AcyclicFlows)
}

// GetEdgeFlowWith is GetEdgeFlow with an explicit cycle-cancelling choice.
// With acyclic set, the flow decomposes into simple source→target paths.
//
// Checks, in order:
//  1. m is not an edge literal (ErrInvalidArgumentOrder when e is a flow
//     atom, ErrSelfReferentialQuery when e is m).
//  2. m is a flow atom of this graph.
//  3. e is an edge literal of this graph.
//  4. m is true in the last model.
func (g *Graph) GetEdgeFlowWith(m, e z.Lit, acyclic bool) (int64, error) {
	if a, _, ok := g.s.reg.Lookup(m); ok && a.Kind == theory.KindEdge {
		ea, _, eok := g.s.reg.Lookup(e)
		switch {
		case eok && ea.Kind == theory.KindFlow:
			return 0, errors.Wrap(ErrInvalidArgumentOrder, "flow atom must come first")
		case m.Var() == e.Var():
			return 0, errors.Wrap(ErrSelfReferentialQuery, "edge flow of an edge")
		default:
			return 0, errors.Wrap(ErrWrongPropagatorKind, "edge literal given as flow atom")
		}
	}
	if _, err := g.atom(m, theory.KindFlow); err != nil {
		return 0, err
	}
	id, ok := g.core.EdgeOf(e)
	if !ok {
		return 0, errors.Wrapf(ErrNotAnEdge, "graph %d", g.ID())
	}
	if err := g.s.modelTrue(m); err != nil {
		return 0, err
	}
	f, ok := g.flow.EdgeFlow(m, id, acyclic)
	if !ok {
		panic("solver: attached flow atom unknown to its propagator")
	}
	return f, nil
}

// atom returns the atom behind m, rejecting other kinds before other graphs.
func (g *Graph) atom(m z.Lit, kind theory.Kind) (theory.Atom, error) {
	a, _, ok := g.s.reg.Lookup(m)
	if !ok || a.Kind != kind {
		got := theory.KindNone
		if ok {
			got = a.Kind
		}
		return theory.Atom{}, errors.Wrapf(ErrWrongPropagatorKind, "want %s atom, got %s", kind, got)
	}
	if a.Graph != g.ID() {
		return theory.Atom{}, errors.Wrapf(ErrCrossGraphQuery, "atom of graph %d queried on graph %d", a.Graph, g.ID())
	}
	return a, nil
}

// modelTrue checks that a model exists and m holds in it.
func (s *Solver) modelTrue(m z.Lit) error {
	if !s.HasModel() {
		return ErrNoModel
	}
	if !s.Value(m) {
		return ErrAtomNotTrue
	}
	return nil
}
