// SPDX-License-Identifier: MIT
// Package: graphsat/builder
//
// api.go - public entry points for the builder package.
//
// Design contract:
//   - One orchestrator: Build(s, gopts, bopts, cons...). Creates the graph,
//     resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical graphs and identical edge literal order.
//   - Constructors never panic; they return sentinel errors.

package builder

import (
	"fmt"

	"github.com/go-air/gini/z"
	"github.com/samber/lo"

	"github.com/katalvlaran/graphsat/solver"
)

// Constructor adds a topology to t using the resolved builderConfig.
// Constructors MUST:
//   - Validate parameters before touching t and return sentinel errors.
//   - Emit nodes and edges in a stable, documented order.
type Constructor func(t *Topology, cfg builderConfig) error

// Edge is one emitted edge with its control literal.
type Edge struct {
	From, To solver.NodeID
	Lit      z.Lit
	Weight   int64
}

// Topology is a solver graph populated by constructors. Nodes carry the
// labels produced by the ID scheme; a label names one node, so constructors
// sharing labels share nodes.
type Topology struct {
	Graph *solver.Graph
	Edges []Edge

	labels []string
	index  map[string]solver.NodeID
}

// Build creates a graph on s with gopts, resolves bopts and applies cons in
// order. Errors are wrapped as "Build: %w"; no partial cleanup is attempted.
func Build(s *solver.Solver, gopts []solver.GraphOption, bopts []BuilderOption, cons ...Constructor) (*Topology, error) {
	g, err := s.NewGraph(gopts...)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	t := &Topology{Graph: g, index: make(map[string]solver.NodeID)}
	if err := t.Apply(bopts, cons...); err != nil {
		return nil, err
	}

	return t, nil
}

// Apply runs more constructors on an existing topology.
func (t *Topology) Apply(bopts []BuilderOption, cons ...Constructor) error {
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(t, cfg); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
	}

	return nil
}

// Node returns the node labelled id.
func (t *Topology) Node(id string) (solver.NodeID, bool) {
	n, ok := t.index[id]
	return n, ok
}

// Label returns the label of n, or "" when n is unknown.
func (t *Topology) Label(n solver.NodeID) string {
	if int(n) < 0 || int(n) >= len(t.labels) {
		return ""
	}
	return t.labels[n]
}

// Lits returns the edge literals in emission order.
func (t *Topology) Lits() []z.Lit {
	return lo.Map(t.Edges, func(e Edge, _ int) z.Lit { return e.Lit })
}

// node returns the node labelled id, adding it on first use.
func (t *Topology) node(id string) (solver.NodeID, error) {
	if n, ok := t.index[id]; ok {
		return n, nil
	}
	n, err := t.Graph.AddNode()
	if err != nil {
		return 0, err
	}
	t.index[id] = n
	t.labels = append(t.labels, id)

	return n, nil
}

// nodes adds idFn(0..n-1) and returns their node ids.
func (t *Topology) nodes(method string, n int, idFn IDFn) ([]solver.NodeID, error) {
	out := make([]solver.NodeID, n)
	for i := range out {
		id := idFn(i)
		v, err := t.node(id)
		if err != nil {
			return nil, fmt.Errorf("%s: AddNode(%s): %w", method, id, err)
		}
		out[i] = v
	}

	return out, nil
}

// edge adds u→v, and v→u as well when cfg.bothWays is set. Each direction
// draws its own weight.
func (t *Topology) edge(method string, cfg builderConfig, u, v solver.NodeID) error {
	if err := t.addEdge(method, cfg, u, v); err != nil {
		return err
	}
	if cfg.bothWays && u != v {
		return t.addEdge(method, cfg, v, u)
	}
	return nil
}

func (t *Topology) addEdge(method string, cfg builderConfig, u, v solver.NodeID) error {
	w := cfg.weightFn(cfg.rng)
	m, err := t.Graph.AddEdge(u, v, solver.WithWeight(w))
	if err != nil {
		return fmt.Errorf("%s: AddEdge(%s→%s, w=%d): %w", method, t.Label(u), t.Label(v), w, err)
	}
	t.Edges = append(t.Edges, Edge{From: u, To: v, Lit: m, Weight: w})

	return nil
}
