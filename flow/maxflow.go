// SPDX-License-Identifier: MIT

package flow

import (
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/theory"
)

type pairKey struct {
	source, sink core.NodeID
}

// pair holds the low and high networks shared by atoms with the same
// source and sink.
type pair struct {
	key       pairKey
	low, high *Network
}

// flowAtom is an atom normalized to "maxflow(s,t) cmp bound" with
// cmp ∈ {≥, >}.
type flowAtom struct {
	lit   z.Lit
	pair  *pair
	cmp   theory.Comparison
	bound core.Weight
}

// MaxFlow decides maximum-flow atoms over one graph.
type MaxFlow struct {
	g     *core.Graph
	r     theory.Reader
	opts  Options
	edges *core.EdgeState
	pairs map[pairKey]*pair
	order []*pair
	atoms map[z.Var]*flowAtom
	list  []*flowAtom

	weightBits map[z.Var]struct{}
	bits       []bitMark
	dirty      bool
}

type bitMark struct {
	v     z.Var
	level int
}

// NewMaxFlow returns a max-flow propagator over g reading values from r.
// g must be frozen.
func NewMaxFlow(g *core.Graph, r theory.Reader, opts ...Option) *MaxFlow {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &MaxFlow{
		g:          g,
		r:          r,
		opts:       o,
		edges:      core.NewEdgeState(g.NumEdges()),
		pairs:      make(map[pairKey]*pair),
		atoms:      make(map[z.Var]*flowAtom),
		weightBits: make(map[z.Var]struct{}),
		dirty:      true,
	}
	for _, e := range g.Edges() {
		for _, b := range e.Weight.Bits {
			p.weightBits[b.Var()] = struct{}{}
		}
	}
	return p
}

// Name implements theory.Propagator.
func (p *MaxFlow) Name() string { return Name }

// WeightVars returns the variables of every symbolic capacity.
func (p *MaxFlow) WeightVars() []z.Var {
	var out []z.Var
	for _, e := range p.g.Edges() {
		for _, b := range e.Weight.Bits {
			out = append(out, b.Var())
		}
	}
	return out
}

// AddAtom makes m stand for "maxflow(source,sink) cmp bound".
func (p *MaxFlow) AddAtom(m z.Lit, source, sink core.NodeID, cmp theory.Comparison, bound core.Weight) {
	if _, dup := p.atoms[m.Var()]; dup {
		return
	}
	key := pairKey{source: source, sink: sink}
	pr, ok := p.pairs[key]
	if !ok {
		pr = &pair{
			key:  key,
			low:  NewNetwork(p.g, source, sink),
			high: NewNetwork(p.g, source, sink),
		}
		p.pairs[key] = pr
		p.order = append(p.order, pr)
		p.dirty = true
	}
	switch cmp {
	case theory.LEQ, theory.LT:
		cmp = cmp.Negate()
		m = m.Not()
	}
	a := &flowAtom{lit: m, pair: pr, cmp: cmp, bound: bound}
	p.atoms[m.Var()] = a
	p.list = append(p.list, a)
}

// Assign implements theory.Propagator.
func (p *MaxFlow) Assign(m z.Lit, level int) {
	if _, ok := p.weightBits[m.Var()]; ok {
		p.bits = append(p.bits, bitMark{v: m.Var(), level: level})
		p.dirty = true
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
	if p.edges.Set(e, st, level) {
		p.dirty = true
	}
}

// Backtrack implements theory.Propagator.
func (p *MaxFlow) Backtrack(level int) {
	i := len(p.bits)
	for i > 0 && p.bits[i-1].level > level {
		i--
	}
	if i < len(p.bits) {
		p.bits = p.bits[:i]
		p.dirty = true
	}
	if len(p.edges.Backtrack(level)) > 0 {
		p.dirty = true
	}
}

// Propagate implements theory.Propagator.
func (p *MaxFlow) Propagate() []z.Lit {
	p.refresh()
	var out []z.Lit
	for _, a := range p.list {
		lo, hi := theory.Range(a.bound, p.r)
		switch {
		case a.cmp.Holds(a.pair.low.Value(), hi):
			out = append(out, a.lit)
		case !a.cmp.Holds(a.pair.high.Value(), lo):
			out = append(out, a.lit.Not())
		}
	}
	return out
}

// Explain implements theory.Propagator.
func (p *MaxFlow) Explain(m z.Lit) []z.Lit {
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

// Value returns the maximum flow of the atom m's (source, sink) pair over
// enabled edges.
func (p *MaxFlow) Value(m z.Lit) (int64, bool) {
	a, ok := p.atoms[m.Var()]
	if !ok {
		return 0, false
	}
	p.refresh()
	return a.pair.low.Value(), true
}

// EdgeFlow returns the flow on edge e in the witness of the atom m. With
// acyclic set, flow cycles are cancelled first.
func (p *MaxFlow) EdgeFlow(m z.Lit, e core.EdgeID, acyclic bool) (int64, bool) {
	a, ok := p.atoms[m.Var()]
	if !ok {
		return 0, false
	}
	p.refresh()
	if acyclic {
		return a.pair.low.AcyclicFlows()[e], true
	}
	return a.pair.low.Flow(e), true
}

// Suggest implements theory.Suggester. For every lower bound that must hold
// but is not yet met by enabled edges, the unassigned edges carrying flow in
// the optimistic network are proposed enabled and their unassigned capacity
// bits proposed one.
func (p *MaxFlow) Suggest() []z.Lit {
	p.refresh()
	var out []z.Lit
	for _, a := range p.list {
		if p.r.Value(a.lit) != theory.True {
			continue
		}
		_, hi := theory.Range(a.bound, p.r)
		if a.cmp.Holds(a.pair.low.Value(), hi) {
			continue
		}
		for _, edge := range p.g.Edges() {
			if a.pair.high.Flow(edge.ID) <= 0 {
				continue
			}
			if p.edges.Status(edge.ID) == core.Unknown {
				out = append(out, edge.Lit)
			}
			for _, b := range edge.Weight.Bits {
				if p.r.Value(b) == theory.Unknown {
					out = append(out, b)
				}
			}
		}
	}
	return out
}

func (p *MaxFlow) explainHolds(a *flowAtom) []z.Lit {
	var out []z.Lit
	low := a.pair.low
	for _, edge := range p.g.Edges() {
		if low.Flow(edge.ID) <= 0 {
			continue
		}
		out = append(out, edge.Lit)
		out = theory.OneBits(out, edge.Weight, p.r)
	}
	return theory.ZeroBits(out, a.bound, p.r)
}

// explainFails returns a cut certificate: every edge leaving the residual
// source side of high is either disabled or bounded above by its known-zero
// bits.
func (p *MaxFlow) explainFails(a *flowAtom) []z.Lit {
	side := a.pair.high.SourceSide()
	var out []z.Lit
	for _, edge := range p.g.Edges() {
		if !side[edge.From] || side[edge.To] {
			continue
		}
		if p.edges.Disabled(edge.ID) {
			out = append(out, edge.Lit.Not())
			continue
		}
		out = theory.ZeroBits(out, edge.Weight, p.r)
	}
	return theory.OneBits(out, a.bound, p.r)
}

func (p *MaxFlow) refresh() {
	if !p.dirty {
		return
	}
	for _, pr := range p.order {
		pr.low.SetCaps(p.lowCap)
		pr.low.Augment(p.opts.Algorithm)
		pr.high.SetCaps(p.highCap)
		pr.high.Augment(p.opts.Algorithm)
	}
	p.dirty = false
}

func (p *MaxFlow) lowCap(e core.EdgeID) int64 {
	if !p.edges.Enabled(e) {
		return 0
	}
	return theory.Lower(p.g.Edge(e).Weight, p.r)
}

func (p *MaxFlow) highCap(e core.EdgeID) int64 {
	if p.edges.Disabled(e) {
		return 0
	}
	return theory.Upper(p.g.Edge(e).Weight, p.r)
}
