// SPDX-License-Identifier: MIT
//
// File: graph.go
// Role: client handle over one core.Graph; edge creation and graph atoms.
// Determinism:
//   - Identical queries return the same literal.
//   - Propagators are created at the first solve that needs them.

package solver

import (
	"math/bits"
	"strconv"

	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/katalvlaran/graphsat/bfs"
	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/dfs"
	"github.com/katalvlaran/graphsat/dijkstra"
	"github.com/katalvlaran/graphsat/flow"
	"github.com/katalvlaran/graphsat/theory"
)

// NodeID identifies a node of a Graph.
type NodeID = core.NodeID

// Comparison relates a graph quantity to a bound.
type Comparison = theory.Comparison

// The four comparisons.
const (
	GEQ = theory.GEQ
	GT  = theory.GT
	LEQ = theory.LEQ
	LT  = theory.LT
)

// NoBitwidth is the bitwidth of a graph without symbolic weights.
const NoBitwidth = core.NoBitwidth

// DefaultResultWidth is the minimum width of Distance and MaximumFlow
// vectors on graphs without a bitwidth.
const DefaultResultWidth = 32

// GraphOption configures a new Graph.
type GraphOption = core.GraphOption

// WithBitwidth sets the width of symbolic edge weights.
func WithBitwidth(w int) GraphOption { return core.WithBitwidth(w) }

// Graph is a directed graph whose edges are switched by literals of one
// Solver. It accepts nodes and edges until the first solve after its
// creation; atoms may be added at any time.
type Graph struct {
	s    *Solver
	core *core.Graph

	reach   *bfs.Reach
	dist    *dijkstra.Distance
	flow    *flow.MaxFlow
	acyclic map[bool]*dfs.Acyclic

	vectors map[string]*BitVector
}

// NewGraph adds an empty graph to s.
func (s *Solver) NewGraph(opts ...GraphOption) (*Graph, error) {
	cg, err := core.NewGraph(len(s.graphs), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "new graph")
	}
	g := &Graph{
		s:       s,
		core:    cg,
		acyclic: make(map[bool]*dfs.Acyclic),
		vectors: make(map[string]*BitVector),
	}
	s.graphs = append(s.graphs, g)

	return g, nil
}

// ID returns the graph's index inside its Solver.
func (g *Graph) ID() int { return g.core.ID() }

// Bitwidth returns the symbolic weight width, or NoBitwidth.
func (g *Graph) Bitwidth() int { return g.core.Bitwidth() }

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return g.core.NumNodes() }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return g.core.NumEdges() }

// Frozen reports whether the graph stopped accepting nodes and edges.
func (g *Graph) Frozen() bool { return g.core.Frozen() }

// AddNode appends a node.
func (g *Graph) AddNode() (NodeID, error) {
	n, err := g.core.AddNode()
	if err != nil {
		return 0, errors.Wrapf(err, "graph %d", g.ID())
	}
	return n, nil
}

// EdgeOption configures AddEdge.
type EdgeOption func(*edgeConfig)

type edgeConfig struct {
	weight core.Weight
}

// WithWeight sets a constant weight (default 1).
func WithWeight(w int64) EdgeOption {
	return func(c *edgeConfig) { c.weight = core.ConstWeight(w) }
}

// AddEdge adds an edge from→to and returns its control literal.
func (g *Graph) AddEdge(from, to NodeID, opts ...EdgeOption) (z.Lit, error) {
	cfg := edgeConfig{weight: core.ConstWeight(core.DefaultWeight)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return g.addEdge(from, to, cfg.weight)
}

// AddEdgeBV adds an edge whose weight is bv. A constant bv is stored as a
// constant weight; a symbolic one must match the graph bitwidth.
func (g *Graph) AddEdgeBV(from, to NodeID, bv *BitVector) (z.Lit, error) {
	if err := g.s.own(bv); err != nil {
		return z.LitNull, errors.Wrapf(err, "edge %d→%d", from, to)
	}
	return g.addEdge(from, to, bv.weight())
}

func (g *Graph) addEdge(from, to NodeID, w core.Weight) (z.Lit, error) {
	m := g.s.c.Lit()
	id, err := g.core.AddEdge(from, to, w, m)
	if err != nil {
		return z.LitNull, errors.Wrapf(err, "graph %d: edge %d→%d", g.ID(), from, to)
	}
	g.s.reg.Register(m, theory.Atom{Kind: theory.KindEdge, Graph: g.ID(), Edge: id})
	return m, nil
}

// Endpoints returns the endpoints of the edge controlled by m.
func (g *Graph) Endpoints(m z.Lit) (from, to NodeID, ok bool) {
	id, ok := g.core.EdgeOf(m)
	if !ok {
		return 0, 0, false
	}
	e := g.core.Edge(id)
	return e.From, e.To, true
}

// Reaches returns a literal that is true iff target is reachable from
// source over enabled edges.
func (g *Graph) Reaches(source, target NodeID) (z.Lit, error) {
	return g.reaches(source, target, false)
}

// ReachesBackward returns a literal that is true iff source is reachable
// from target, searched from source over reversed edges.
func (g *Graph) ReachesBackward(source, target NodeID) (z.Lit, error) {
	return g.reaches(source, target, true)
}

func (g *Graph) reaches(source, target NodeID, backward bool) (z.Lit, error) {
	if err := g.nodes(source, target); err != nil {
		return z.LitNull, err
	}
	key := g.key("reach", source, target) + "/" + strconv.FormatBool(backward)
	return g.s.reg.Intern(key, func() z.Lit {
		m := g.s.c.Lit()
		g.s.reg.Register(m, theory.Atom{
			Kind:     theory.KindReach,
			Graph:    g.ID(),
			Source:   source,
			Target:   target,
			Backward: backward,
		})
		return m
	}), nil
}

// OnPath returns a literal that is true iff via lies on a walk from source
// to target: source reaches via and via reaches target.
func (g *Graph) OnPath(via, source, target NodeID) (z.Lit, error) {
	if err := g.nodes(via, source, target); err != nil {
		return z.LitNull, err
	}
	first, _ := g.Reaches(source, via)
	second, _ := g.Reaches(via, target)
	key := g.key("onpath", source, target) + "/" + itoa(int64(via))
	return g.s.reg.Intern(key, func() z.Lit {
		m := g.s.c.And(first, second)
		if _, _, known := g.s.reg.Lookup(m); known {
			// source = via = target folds to a single reach atom.
			return m
		}
		g.s.reg.Register(m, theory.Atom{
			Kind:   theory.KindReach,
			Graph:  g.ID(),
			Source: source,
			Target: target,
			Via:    via,
			Parts:  []z.Lit{first, second},
		})
		return m
	}), nil
}

// CompareDistance returns a literal for "shortest weighted distance from
// source to target cmp bound". An unreachable target satisfies GEQ and GT
// and falsifies LEQ and LT.
func (g *Graph) CompareDistance(source, target NodeID, cmp Comparison, bound *BitVector) (z.Lit, error) {
	if err := g.s.own(bound); err != nil {
		return z.LitNull, errors.Wrap(err, "distance bound")
	}
	return g.compare(theory.KindDistance, source, target, cmp, bound.weight(), bound.key())
}

// CompareDistanceConst is CompareDistance against a constant.
func (g *Graph) CompareDistanceConst(source, target NodeID, cmp Comparison, bound int64) (z.Lit, error) {
	if bound < 0 {
		return z.LitNull, errors.Wrapf(ErrValueOutOfRange, "distance bound %d", bound)
	}
	return g.compare(theory.KindDistance, source, target, cmp, core.ConstWeight(bound), "c"+itoa(bound))
}

// CompareMaximumFlow returns a literal for "maximum flow from source to
// target cmp bound", with edge weights as capacities.
func (g *Graph) CompareMaximumFlow(source, target NodeID, cmp Comparison, bound *BitVector) (z.Lit, error) {
	if err := g.s.own(bound); err != nil {
		return z.LitNull, errors.Wrap(err, "flow bound")
	}
	return g.compare(theory.KindFlow, source, target, cmp, bound.weight(), bound.key())
}

// CompareMaximumFlowConst is CompareMaximumFlow against a constant.
func (g *Graph) CompareMaximumFlowConst(source, target NodeID, cmp Comparison, bound int64) (z.Lit, error) {
	if bound < 0 {
		return z.LitNull, errors.Wrapf(ErrValueOutOfRange, "flow bound %d", bound)
	}
	return g.compare(theory.KindFlow, source, target, cmp, core.ConstWeight(bound), "c"+itoa(bound))
}

func (g *Graph) compare(kind theory.Kind, source, target NodeID, cmp Comparison, bound core.Weight, boundKey string) (z.Lit, error) {
	if !cmp.Valid() {
		return z.LitNull, errors.Wrapf(ErrBadComparison, "%s", cmp)
	}
	if err := g.nodes(source, target); err != nil {
		return z.LitNull, err
	}
	key := g.key(kind.String(), source, target) + "/" + itoa(int64(cmp)) + "/" + boundKey
	return g.s.reg.Intern(key, func() z.Lit {
		m := g.s.c.Lit()
		g.s.reg.Register(m, theory.Atom{
			Kind:   kind,
			Graph:  g.ID(),
			Source: source,
			Target: target,
			Cmp:    cmp,
			Bound:  bound,
		})
		return m
	}), nil
}

// Distance returns a vector equal to the shortest weighted distance from
// source to target. The vector is constrained, so an unreachable target
// makes every model that uses it impossible.
func (g *Graph) Distance(source, target NodeID) (*BitVector, error) {
	return g.measure(theory.KindDistance, source, target)
}

// MaximumFlow returns a vector equal to the maximum flow from source to
// target.
func (g *Graph) MaximumFlow(source, target NodeID) (*BitVector, error) {
	return g.measure(theory.KindFlow, source, target)
}

func (g *Graph) measure(kind theory.Kind, source, target NodeID) (*BitVector, error) {
	if err := g.nodes(source, target); err != nil {
		return nil, err
	}
	key := g.key(kind.String(), source, target)
	if bv, ok := g.vectors[key]; ok {
		return bv, nil
	}
	bv, err := g.s.NewBitVector(g.resultWidth())
	if err != nil {
		return nil, err
	}
	for _, cmp := range []Comparison{LEQ, GEQ} {
		m, err := g.compare(kind, source, target, cmp, bv.weight(), bv.key())
		if err != nil {
			return nil, err
		}
		g.s.AssertTrue(m)
	}
	g.vectors[key] = bv

	return bv, nil
}

// resultWidth is the graph bitwidth, or enough bits for the current weight
// total and at least DefaultResultWidth.
func (g *Graph) resultWidth() int {
	if w := g.core.Bitwidth(); w > 0 {
		return w
	}
	w := bits.Len64(uint64(g.core.MaxWeightSum()))
	if w < DefaultResultWidth {
		w = DefaultResultWidth
	}
	if w > MaxWidth {
		w = MaxWidth
	}
	return w
}

// Acyclic returns a literal that is true iff the enabled edges form no
// cycle. With directed unset, edges are read as undirected, so parallel
// edges and self-loops are cycles.
func (g *Graph) Acyclic(directed bool) z.Lit {
	key := "acyclic/" + itoa(int64(g.ID())) + "/" + strconv.FormatBool(directed)
	return g.s.reg.Intern(key, func() z.Lit {
		m := g.s.c.Lit()
		g.s.reg.Register(m, theory.Atom{Kind: theory.KindAcyclic, Graph: g.ID(), Directed: directed})
		return m
	})
}

// attachAtom gives a registered atom to the propagator of its kind.
// Returns false for atoms no propagator tracks.
func (g *Graph) attachAtom(m z.Lit, a theory.Atom) bool {
	switch a.Kind {
	case theory.KindReach:
		if a.OnPath() {
			return false
		}
		dir := core.Forward
		if a.Backward {
			dir = core.Backward
		}
		p := g.reachProp()
		p.AddAtom(m, a.Source, a.Target, dir)
		g.s.watchAtom(m, a.Bound, p)
	case theory.KindDistance:
		p := g.distanceProp()
		p.AddAtom(m, a.Source, a.Target, a.Cmp, a.Bound)
		g.s.watchAtom(m, a.Bound, p)
	case theory.KindFlow:
		p := g.flowProp()
		p.AddAtom(m, a.Source, a.Target, a.Cmp, a.Bound)
		g.s.watchAtom(m, a.Bound, p)
	case theory.KindAcyclic:
		p := g.acyclicProp(a.Directed)
		p.AddAtom(m)
		g.s.watchAtom(m, a.Bound, p)
	default:
		return false
	}
	return true
}

func (g *Graph) reachProp() *bfs.Reach {
	if g.reach == nil {
		g.reach = bfs.NewReach(g.core, g.s.coord.Reader())
		g.s.install(g.reach, g.core, nil)
	}
	return g.reach
}

func (g *Graph) distanceProp() *dijkstra.Distance {
	if g.dist == nil {
		g.dist = dijkstra.NewDistance(g.core, g.s.coord.Reader())
		g.s.install(g.dist, g.core, g.dist.WeightVars())
	}
	return g.dist
}

func (g *Graph) flowProp() *flow.MaxFlow {
	if g.flow == nil {
		g.flow = flow.NewMaxFlow(g.core, g.s.coord.Reader(), flow.WithAlgorithm(g.s.opts.FlowAlgorithm))
		g.s.install(g.flow, g.core, g.flow.WeightVars())
	}
	return g.flow
}

func (g *Graph) acyclicProp(directed bool) *dfs.Acyclic {
	p, ok := g.acyclic[directed]
	if !ok {
		p = dfs.NewAcyclic(g.core, g.s.coord.Reader(), directed)
		g.acyclic[directed] = p
		g.s.install(p, g.core, nil)
	}
	return p
}

func (g *Graph) nodes(ns ...NodeID) error {
	for _, n := range ns {
		if !g.core.HasNode(n) {
			return errors.Wrapf(ErrNodeOutOfRange, "graph %d: node %d", g.ID(), n)
		}
	}
	return nil
}

func (g *Graph) key(kind string, source, target NodeID) string {
	return kind + "/" + itoa(int64(g.ID())) + "/" + itoa(int64(source)) + "/" + itoa(int64(target))
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
