package dijkstra

import (
	"container/heap"

	"github.com/samber/lo"

	"github.com/katalvlaran/graphsat/core"
)

// Run computes shortest distances from source over the edges weight accepts.
//
// Steps:
//  1. Dist[v] = Inf and Prev[v] = NoEdge for all v; Dist[source] = 0.
//  2. Pop the closest node; skip stale heap entries.
//  3. Relax its out-edges; push every strictly improved neighbor.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func Run(g *core.Graph, source core.NodeID, weight WeightFn) *Tree {
	n := g.NumNodes()
	t := &Tree{
		Source: source,
		Dist:   make([]int64, n),
		Prev:   make([]core.EdgeID, n),
	}
	for i := range t.Dist {
		t.Dist[i] = Inf
		t.Prev[i] = core.NoEdge
	}
	t.Dist[source] = 0

	pq := make(nodePQ, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: source, dist: 0})
	t.process(g, weight, &pq)

	return t
}

// Relax repairs t after edge e became usable or cheaper. Only nodes whose
// distance strictly drops are revisited.
func (t *Tree) Relax(g *core.Graph, e core.EdgeID, weight WeightFn) {
	pq := make(nodePQ, 0)
	if t.improve(g, e, weight, &pq) {
		t.process(g, weight, &pq)
	}
}

// PathTo returns the edges of the tree path from the source to v, oriented
// from the source. ok is false when v is unreachable.
func (t *Tree) PathTo(g *core.Graph, v core.NodeID) (edges []core.EdgeID, ok bool) {
	if t.Dist[v] == Inf {
		return nil, false
	}
	for u := v; t.Prev[u] != core.NoEdge; u = g.Edge(t.Prev[u]).From {
		edges = append(edges, t.Prev[u])
	}
	return lo.Reverse(edges), true
}

func (t *Tree) process(g *core.Graph, weight WeightFn, pq *nodePQ) {
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*nodeItem)
		if item.dist > t.Dist[item.id] {
			continue
		}
		for _, e := range g.Out(item.id) {
			t.improve(g, e, weight, pq)
		}
	}
}

// improve relaxes a single edge and reports whether its head got closer.
func (t *Tree) improve(g *core.Graph, e core.EdgeID, weight WeightFn, pq *nodePQ) bool {
	w, ok := weight(e)
	if !ok {
		return false
	}
	edge := g.Edge(e)
	if t.Dist[edge.From] == Inf {
		return false
	}
	d := add(t.Dist[edge.From], w)
	if d >= t.Dist[edge.To] {
		return false
	}
	t.Dist[edge.To] = d
	t.Prev[edge.To] = e
	heap.Push(pq, &nodeItem{id: edge.To, dist: d})

	return true
}
