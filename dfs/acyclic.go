// SPDX-License-Identifier: MIT

package dfs

import (
	"github.com/go-air/gini/z"
	"github.com/samber/lo"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/theory"
)

// Acyclic decides "the enabled subgraph has no cycle" atoms for one graph
// under one reading of its edges (directed or undirected).
//
// Two searches are cached:
//   - under: enabled edges only. A cycle here makes the atom false.
//   - over:  every edge not known disabled. No cycle here makes it true.
//
// While under is empty and current, enabling an edge only searches for a
// cycle through that edge.
type Acyclic struct {
	g        *core.Graph
	r        theory.Reader
	directed bool
	edges    *core.EdgeState
	lits     []z.Lit

	under, over           []core.EdgeID
	underStale, overStale bool
}

// NewAcyclic returns an acyclicity propagator over g reading values from r.
// g must be frozen.
func NewAcyclic(g *core.Graph, r theory.Reader, directed bool) *Acyclic {
	return &Acyclic{
		g:          g,
		r:          r,
		directed:   directed,
		edges:      core.NewEdgeState(g.NumEdges()),
		underStale: true,
		overStale:  true,
	}
}

// Name implements theory.Propagator.
func (p *Acyclic) Name() string { return Name }

// AddAtom makes m stand for acyclicity of the enabled subgraph.
func (p *Acyclic) AddAtom(m z.Lit) {
	if !m.IsPos() {
		m = m.Not()
	}
	if lo.Contains(p.lits, m) {
		return
	}
	p.lits = append(p.lits, m)
}

// Assign implements theory.Propagator.
func (p *Acyclic) Assign(m z.Lit, level int) {
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
	if st == core.Enabled {
		// A known cycle stays; otherwise only a cycle through e is new.
		if p.under == nil && !p.underStale {
			p.under = ClosingCycle(p.g, e, p.directed, p.edges.Enabled)
		}
		return
	}
	if p.over != nil && lo.Contains(p.over, e) {
		p.overStale = true
	}
}

// Backtrack implements theory.Propagator.
func (p *Acyclic) Backtrack(level int) {
	for _, ch := range p.edges.Backtrack(level) {
		switch ch.Next {
		case core.Enabled:
			if p.under != nil && lo.Contains(p.under, ch.Edge) {
				p.underStale = true
			}
		case core.Disabled:
			if p.over == nil {
				p.overStale = true
			}
		}
	}
}

// Propagate implements theory.Propagator.
func (p *Acyclic) Propagate() []z.Lit {
	p.refresh()
	var out []z.Lit
	for _, m := range p.lits {
		switch {
		case p.under != nil:
			out = append(out, m.Not())
		case p.over == nil:
			out = append(out, m)
		}
	}
	return out
}

// Explain implements theory.Propagator.
//
// A violated atom is explained by the enabled edges of one cycle. A
// satisfied atom is explained by a subset of the disabled edges whose
// absence alone keeps the graph acyclic.
func (p *Acyclic) Explain(m z.Lit) []z.Lit {
	if !lo.Contains(p.lits, m) && !lo.Contains(p.lits, m.Not()) {
		return nil
	}
	p.refresh()
	if !m.IsPos() {
		return lo.Map(p.under, func(e core.EdgeID, _ int) z.Lit { return p.g.Edge(e).Lit })
	}
	return p.essentialDisabled()
}

// essentialDisabled greedily re-admits disabled edges in ID order as long
// as the graph stays acyclic; the rest must stay disabled.
func (p *Acyclic) essentialDisabled() []z.Lit {
	readmitted := make(map[core.EdgeID]bool)
	allow := func(e core.EdgeID) bool { return !p.edges.Disabled(e) || readmitted[e] }

	var keep []z.Lit
	for _, edge := range p.g.Edges() {
		if !p.edges.Disabled(edge.ID) {
			continue
		}
		readmitted[edge.ID] = true
		if FindCycle(p.g, p.directed, allow) != nil {
			readmitted[edge.ID] = false
			keep = append(keep, edge.Lit.Not())
		}
	}
	return keep
}

func (p *Acyclic) refresh() {
	if p.underStale {
		p.under = FindCycle(p.g, p.directed, p.edges.Enabled)
		p.underStale = false
	}
	if p.overStale {
		p.over = FindCycle(p.g, p.directed, p.open)
		p.overStale = false
	}
}

func (p *Acyclic) open(e core.EdgeID) bool { return !p.edges.Disabled(e) }
