// SPDX-License-Identifier: MIT

package bfs

import (
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/theory"
)

// Name is the propagator name used in lemmas and metrics.
const Name = "reach"

type groupKey struct {
	source core.NodeID
	dir    core.Direction
}

// group shares the under/over trees between every atom with the same source
// and direction.
type group struct {
	key         groupKey
	under, over *Tree
	underStale  bool
	overStale   bool
}

type reachAtom struct {
	lit    z.Lit
	group  *group
	target core.NodeID
}

// Reach decides reachability atoms over one graph.
type Reach struct {
	g      *core.Graph
	r      theory.Reader
	edges  *core.EdgeState
	groups map[groupKey]*group
	order  []*group
	atoms  map[z.Var]*reachAtom
	list   []*reachAtom
}

// NewReach returns a reachability propagator over g reading values from r.
// g must be frozen.
func NewReach(g *core.Graph, r theory.Reader) *Reach {
	return &Reach{
		g:      g,
		r:      r,
		edges:  core.NewEdgeState(g.NumEdges()),
		groups: make(map[groupKey]*group),
		atoms:  make(map[z.Var]*reachAtom),
	}
}

// Name implements theory.Propagator.
func (p *Reach) Name() string { return Name }

// AddAtom makes m stand for "target is reachable from source" in direction
// dir. Adding a known variable again is a no-op.
func (p *Reach) AddAtom(m z.Lit, source, target core.NodeID, dir core.Direction) {
	if _, dup := p.atoms[m.Var()]; dup {
		return
	}
	key := groupKey{source: source, dir: dir}
	gr, ok := p.groups[key]
	if !ok {
		gr = &group{key: key, underStale: true, overStale: true}
		p.groups[key] = gr
		p.order = append(p.order, gr)
	}
	if !m.IsPos() {
		m = m.Not()
	}
	a := &reachAtom{lit: m, group: gr, target: target}
	p.atoms[m.Var()] = a
	p.list = append(p.list, a)
}

// Assign implements theory.Propagator. Only edge literals change state.
func (p *Reach) Assign(m z.Lit, level int) {
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
	for _, gr := range p.order {
		if st == core.Enabled {
			if !gr.underStale {
				gr.under.Extend(p.g, e, p.enabled)
			}
			continue
		}
		if !gr.overStale && gr.over.Parent[p.g.Edge(e).Head(gr.key.dir)] == e {
			gr.overStale = true
		}
	}
}

// Backtrack implements theory.Propagator.
func (p *Reach) Backtrack(level int) {
	for _, ch := range p.edges.Backtrack(level) {
		for _, gr := range p.order {
			switch ch.Next {
			case core.Enabled:
				if !gr.underStale && gr.under.Parent[p.g.Edge(ch.Edge).Head(gr.key.dir)] == ch.Edge {
					gr.underStale = true
				}
			case core.Disabled:
				if !gr.overStale {
					gr.over.Extend(p.g, ch.Edge, p.open)
				}
			}
		}
	}
}

// Propagate implements theory.Propagator.
func (p *Reach) Propagate() []z.Lit {
	p.refresh()
	var out []z.Lit
	for _, a := range p.list {
		switch {
		case a.group.under.Seen[a.target]:
			out = append(out, a.lit)
		case !a.group.over.Seen[a.target]:
			out = append(out, a.lit.Not())
		}
	}
	return out
}

// Explain implements theory.Propagator.
//
// A positive atom is explained by the enabled edges on its under-tree path.
// A negative atom is explained by the disabled edges leaving the set of
// nodes the over tree reaches.
func (p *Reach) Explain(m z.Lit) []z.Lit {
	a, ok := p.atoms[m.Var()]
	if !ok {
		return nil
	}
	p.refresh()
	gr := a.group
	if m.IsPos() {
		_, edges, ok := gr.under.PathTo(p.g, a.target)
		if !ok {
			return nil
		}
		out := make([]z.Lit, 0, len(edges))
		for _, e := range edges {
			out = append(out, p.g.Edge(e).Lit)
		}
		return out
	}

	var out []z.Lit
	for _, u := range gr.over.Order {
		for _, e := range p.g.Adjacent(u, gr.key.dir) {
			edge := p.g.Edge(e)
			if !gr.over.Seen[edge.Head(gr.key.dir)] {
				out = append(out, edge.Lit.Not())
			}
		}
	}
	return out
}

// Path returns the witness path for the atom m under the current edge state:
// the fewest-edge path over enabled edges with ties broken by adjacency
// order. Nodes and edges are listed in traversal order from the source.
func (p *Reach) Path(m z.Lit) (nodes []core.NodeID, edges []core.EdgeID, ok bool) {
	a, found := p.atoms[m.Var()]
	if !found {
		return nil, nil, false
	}
	t := Walk(p.g, a.group.key.source, a.group.key.dir, p.enabled)
	return t.PathTo(p.g, a.target)
}

// Suggest implements theory.Suggester. For every atom true on the trail but
// not yet backed by enabled edges, the unassigned edges of its fewest-edge
// path over edges not known disabled are proposed enabled. For every atom
// false on the trail that the open edges could still satisfy, the unassigned
// edges leaving its under tree are proposed disabled.
func (p *Reach) Suggest() []z.Lit {
	p.refresh()
	var out []z.Lit
	for _, a := range p.list {
		gr := a.group
		if gr.under.Seen[a.target] || !gr.over.Seen[a.target] {
			continue
		}
		switch p.r.Value(a.lit) {
		case theory.True:
			_, edges, _ := gr.over.PathTo(p.g, a.target)
			for _, e := range edges {
				if p.edges.Status(e) == core.Unknown {
					out = append(out, p.g.Edge(e).Lit)
				}
			}
		case theory.False:
			for _, u := range gr.under.Order {
				for _, e := range p.g.Adjacent(u, gr.key.dir) {
					if p.edges.Status(e) == core.Unknown && !gr.under.Seen[p.g.Edge(e).Head(gr.key.dir)] {
						out = append(out, p.g.Edge(e).Lit.Not())
					}
				}
			}
		}
	}
	return out
}

func (p *Reach) refresh() {
	for _, gr := range p.order {
		if gr.underStale {
			gr.under = Walk(p.g, gr.key.source, gr.key.dir, p.enabled)
			gr.underStale = false
		}
		if gr.overStale {
			gr.over = Walk(p.g, gr.key.source, gr.key.dir, p.open)
			gr.overStale = false
		}
	}
}

func (p *Reach) enabled(e core.EdgeID) bool { return p.edges.Enabled(e) }

func (p *Reach) open(e core.EdgeID) bool { return !p.edges.Disabled(e) }
