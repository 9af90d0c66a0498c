// SPDX-License-Identifier: MIT
//
// File: graph.go
// Role: Graph lifecycle (AddNode/AddEdge/Freeze) and read-only accessors.
// Determinism:
//   - Edges() returns edges in EdgeID order.
//   - Out()/In() return adjacency sorted by (neighbor, EdgeID).

package core

import (
	"sort"

	"github.com/go-air/gini/z"
)

// ID returns the identity the graph was created with.
func (g *Graph) ID() int { return g.id }

// Bitwidth returns the symbolic weight width, or NoBitwidth.
func (g *Graph) Bitwidth() int { return g.bitwidth }

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return g.nodes }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Frozen reports whether the node/edge set is fixed.
func (g *Graph) Frozen() bool { return g.frozen }

// Freeze fixes the node/edge set. It is idempotent.
func (g *Graph) Freeze() { g.frozen = true }

// HasNode reports whether n is a node of g.
func (g *Graph) HasNode(n NodeID) bool { return n >= 0 && int(n) < g.nodes }

// AddNode appends a node and returns its ID.
// Returns ErrFrozenGraph after Freeze.
// Complexity: O(1) amortized.
func (g *Graph) AddNode() (NodeID, error) {
	if g.frozen {
		return 0, ErrFrozenGraph
	}
	n := NodeID(g.nodes)
	g.nodes++
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)

	return n, nil
}

// AddEdge appends an edge from→to with weight w, gated by lit.
//
// Steps:
//  1. Reject when frozen, when an endpoint is out of range, or when w is
//     incompatible with the graph bitwidth.
//  2. Store the edge at index NumEdges().
//  3. Insert its ID into out[from] and in[to] keeping (neighbor, ID) order.
//
// Complexity: O(deg(from) + deg(to)) for the sorted inserts.
func (g *Graph) AddEdge(from, to NodeID, w Weight, lit z.Lit) (EdgeID, error) {
	// 1) Validation.
	if g.frozen {
		return NoEdge, ErrFrozenGraph
	}
	if !g.HasNode(from) || !g.HasNode(to) {
		return NoEdge, ErrNodeOutOfRange
	}
	if w.Symbolic() {
		if g.bitwidth == NoBitwidth {
			return NoEdge, ErrNoSymbolicWeights
		}
		if w.Width() != g.bitwidth {
			return NoEdge, ErrBitwidthMismatch
		}
	} else if w.Const < 0 {
		return NoEdge, EdgeError{From: from, To: to, Weight: w.Const}
	}

	// 2) Store.
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{ID: id, From: from, To: to, Weight: w, Lit: lit})
	g.byVar[lit.Var()] = id

	// 3) Sorted adjacency inserts.
	g.out[from] = g.insertSorted(g.out[from], id, Forward)
	g.in[to] = g.insertSorted(g.in[to], id, Backward)

	return id, nil
}

// insertSorted places id into adj keeping (head(dir), ID) ascending order.
// Since IDs grow monotonically, a new edge goes after every edge with the
// same head.
func (g *Graph) insertSorted(adj []EdgeID, id EdgeID, dir Direction) []EdgeID {
	head := g.edges[id].Head(dir)
	i := sort.Search(len(adj), func(k int) bool {
		return g.edges[adj[k]].Head(dir) > head
	})
	adj = append(adj, NoEdge)
	copy(adj[i+1:], adj[i:])
	adj[i] = id

	return adj
}

// Edge returns the edge with the given ID. It panics on an unknown ID.
func (g *Graph) Edge(id EdgeID) Edge { return g.edges[id] }

// Edges returns all edges in EdgeID order. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// EdgeOf returns the edge gated by the variable of m.
func (g *Graph) EdgeOf(m z.Lit) (EdgeID, bool) {
	id, ok := g.byVar[m.Var()]
	return id, ok
}

// Out returns the IDs of edges leaving u, sorted by (To, ID).
func (g *Graph) Out(u NodeID) []EdgeID { return g.out[u] }

// In returns the IDs of edges entering v, sorted by (From, ID).
func (g *Graph) In(v NodeID) []EdgeID { return g.in[v] }

// MaxWeightSum returns the sum of all constant weights and of the maximal
// values of all symbolic weights: an upper bound on any simple path length
// and on any flow value.
func (g *Graph) MaxWeightSum() int64 {
	var sum int64
	for _, e := range g.edges {
		sum += e.Weight.MaxValue()
	}
	return sum
}
