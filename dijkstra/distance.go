// SPDX-License-Identifier: MIT

package dijkstra

import (
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/theory"
)

// group holds the two trees shared by every atom with the same source.
type group struct {
	source    core.NodeID
	low, high *Tree
	lowStale  bool
	highStale bool
}

// distAtom is an atom normalized to "dist(s,t) cmp bound" with cmp ∈ {≤, <}.
// lit is the literal that holds when the normalized comparison holds.
type distAtom struct {
	lit    z.Lit
	group  *group
	target core.NodeID
	cmp    theory.Comparison
	bound  core.Weight
}

// bitMark records a weight bit assignment for undo detection.
type bitMark struct {
	v     z.Var
	level int
}

// Distance decides weighted shortest-path atoms over one graph.
type Distance struct {
	g      *core.Graph
	r      theory.Reader
	edges  *core.EdgeState
	groups map[core.NodeID]*group
	order  []*group
	atoms  map[z.Var]*distAtom
	list   []*distAtom

	weightBits map[z.Var]struct{}
	bits       []bitMark
}

// NewDistance returns a distance propagator over g reading values from r.
// g must be frozen.
func NewDistance(g *core.Graph, r theory.Reader) *Distance {
	p := &Distance{
		g:          g,
		r:          r,
		edges:      core.NewEdgeState(g.NumEdges()),
		groups:     make(map[core.NodeID]*group),
		atoms:      make(map[z.Var]*distAtom),
		weightBits: make(map[z.Var]struct{}),
	}
	for _, e := range g.Edges() {
		for _, b := range e.Weight.Bits {
			p.weightBits[b.Var()] = struct{}{}
		}
	}
	return p
}

// Name implements theory.Propagator.
func (p *Distance) Name() string { return Name }

// WeightVars returns the variables of every symbolic edge weight.
func (p *Distance) WeightVars() []z.Var {
	out := make([]z.Var, 0, len(p.weightBits))
	for _, e := range p.g.Edges() {
		for _, b := range e.Weight.Bits {
			out = append(out, b.Var())
		}
	}
	return out
}

// AddAtom makes m stand for "dist(source,target) cmp bound".
func (p *Distance) AddAtom(m z.Lit, source, target core.NodeID, cmp theory.Comparison, bound core.Weight) {
	if _, dup := p.atoms[m.Var()]; dup {
		return
	}
	gr, ok := p.groups[source]
	if !ok {
		gr = &group{source: source, lowStale: true, highStale: true}
		p.groups[source] = gr
		p.order = append(p.order, gr)
	}
	switch cmp {
	case theory.GEQ, theory.GT:
		cmp = cmp.Negate()
		m = m.Not()
	}
	a := &distAtom{lit: m, group: gr, target: target, cmp: cmp, bound: bound}
	p.atoms[m.Var()] = a
	p.list = append(p.list, a)
}

// Assign implements theory.Propagator.
func (p *Distance) Assign(m z.Lit, level int) {
	if _, ok := p.weightBits[m.Var()]; ok {
		p.bits = append(p.bits, bitMark{v: m.Var(), level: level})
		p.invalidate()
		return
	}
	e, ok := p.g.EdgeOf(m)
	if !ok {
		return
	}
	st := core.Disabled
	if m.IsPos() {
		st = core.Enabled
	}
	if !p.edges.Set(e, st, level) {
		return
	}
	head := p.g.Edge(e).To
	for _, gr := range p.order {
		if st == core.Enabled {
			if !gr.highStale {
				gr.high.Relax(p.g, e, p.upper)
			}
			continue
		}
		if !gr.lowStale && gr.low.Prev[head] == e {
			gr.lowStale = true
		}
	}
}

// Backtrack implements theory.Propagator.
func (p *Distance) Backtrack(level int) {
	i := len(p.bits)
	for i > 0 && p.bits[i-1].level > level {
		i--
	}
	if i < len(p.bits) {
		p.bits = p.bits[:i]
		p.invalidate()
	}
	for _, ch := range p.edges.Backtrack(level) {
		head := p.g.Edge(ch.Edge).To
		for _, gr := range p.order {
			switch ch.Next {
			case core.Enabled:
				if !gr.highStale && gr.high.Prev[head] == ch.Edge {
					gr.highStale = true
				}
			case core.Disabled:
				if !gr.lowStale {
					gr.low.Relax(p.g, ch.Edge, p.lower)
				}
			}
		}
	}
}

// Propagate implements theory.Propagator.
func (p *Distance) Propagate() []z.Lit {
	p.refresh()
	var out []z.Lit
	for _, a := range p.list {
		switch {
		case p.mustHold(a):
			out = append(out, a.lit)
		case p.cannotHold(a):
			out = append(out, a.lit.Not())
		}
	}
	return out
}

// Explain implements theory.Propagator.
func (p *Distance) Explain(m z.Lit) []z.Lit {
	a, ok := p.atoms[m.Var()]
	if !ok {
		return nil
	}
	p.refresh()
	if m == a.lit {
		return p.explainHolds(a)
	}
	return p.explainFails(a)
}

// Suggest implements theory.Suggester. For every bound that must hold but is
// not yet proven by enabled edges, the unassigned edges of its low-tree path
// are proposed enabled and their unassigned weight bits proposed zero.
func (p *Distance) Suggest() []z.Lit {
	p.refresh()
	var out []z.Lit
	for _, a := range p.list {
		if p.r.Value(a.lit) != theory.True || p.mustHold(a) {
			continue
		}
		edges, ok := a.group.low.PathTo(p.g, a.target)
		if !ok {
			continue
		}
		for _, e := range edges {
			edge := p.g.Edge(e)
			if p.edges.Status(e) == core.Unknown {
				out = append(out, edge.Lit)
			}
			for _, b := range edge.Weight.Bits {
				if p.r.Value(b) == theory.Unknown {
					out = append(out, b.Not())
				}
			}
		}
	}
	return out
}

func (p *Distance) mustHold(a *distAtom) bool {
	d := a.group.high.Dist[a.target]
	if d == Inf {
		return false
	}
	lo, _ := theory.Range(a.bound, p.r)
	return a.cmp.Holds(d, lo)
}

func (p *Distance) cannotHold(a *distAtom) bool {
	d := a.group.low.Dist[a.target]
	if d == Inf {
		return true
	}
	_, hi := theory.Range(a.bound, p.r)
	return !a.cmp.Holds(d, hi)
}

func (p *Distance) explainHolds(a *distAtom) []z.Lit {
	edges, ok := a.group.high.PathTo(p.g, a.target)
	if !ok {
		return nil
	}
	out := make([]z.Lit, 0, len(edges))
	for _, e := range edges {
		edge := p.g.Edge(e)
		out = append(out, edge.Lit)
		out = theory.ZeroBits(out, edge.Weight, p.r)
	}
	return theory.OneBits(out, a.bound, p.r)
}

// explainFails cites what keeps the low tree a valid lower bound within the
// limit. Any node whose distance could drop to the limit or below needs one
// of:
//   - a disabled edge that would shorten it even at its smallest weight;
//   - an open symbolic edge weighing less than its current lower end.
//
// Disabled edges that cannot improve their head within the limit are left
// out, which keeps the clause to the frontier of the bounded region.
func (p *Distance) explainFails(a *distAtom) []z.Lit {
	_, hi := theory.Range(a.bound, p.r)
	limit := hi
	if a.cmp == theory.LT {
		limit = hi - 1
	}
	var out []z.Lit
	low := a.group.low
	for _, edge := range p.g.Edges() {
		du := low.Dist[edge.From]
		if du == Inf || du > limit {
			continue
		}
		dv := low.Dist[edge.To]
		if p.edges.Disabled(edge.ID) {
			if d := add(du, floor(edge.Weight)); d <= limit && d < dv {
				out = append(out, edge.Lit.Not())
			}
			continue
		}
		if edge.Weight.Symbolic() && du < dv {
			out = theory.OneBits(out, edge.Weight, p.r)
		}
	}
	return theory.ZeroBits(out, a.bound, p.r)
}

func (p *Distance) refresh() {
	for _, gr := range p.order {
		if gr.lowStale {
			gr.low = Run(p.g, gr.source, p.lower)
			gr.lowStale = false
		}
		if gr.highStale {
			gr.high = Run(p.g, gr.source, p.upper)
			gr.highStale = false
		}
	}
}

func (p *Distance) invalidate() {
	for _, gr := range p.order {
		gr.lowStale = true
		gr.highStale = true
	}
}

// lower weighs edges not known disabled at their lowest value.
func (p *Distance) lower(e core.EdgeID) (int64, bool) {
	if p.edges.Disabled(e) {
		return 0, false
	}
	return theory.Lower(p.g.Edge(e).Weight, p.r), true
}

// upper weighs edges known enabled at their highest value.
func (p *Distance) upper(e core.EdgeID) (int64, bool) {
	if !p.edges.Enabled(e) {
		return 0, false
	}
	return theory.Upper(p.g.Edge(e).Weight, p.r), true
}

// floor is the smallest weight w can take under any assignment.
func floor(w core.Weight) int64 {
	if w.Symbolic() {
		return 0
	}
	return w.Const
}
