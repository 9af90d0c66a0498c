package dfs

import (
	"github.com/samber/lo"

	"github.com/katalvlaran/graphsat/core"
)

// FindCycle returns the edges of one cycle among the edges allow accepts,
// or nil when there is none. Directed cycles are listed in traversal order;
// undirected cycles list the closing edge first.
//
// Complexity: O(V + E).
func FindCycle(g *core.Graph, directed bool, allow Allow) []core.EdgeID {
	if directed {
		return findDirected(g, allow)
	}
	return findUndirected(g, allow)
}

// findDirected runs three-color DFS from every White vertex.
func findDirected(g *core.Graph, allow Allow) []core.EdgeID {
	state := make([]int, g.NumNodes())
	via := make([]core.EdgeID, g.NumNodes())

	var visit func(u core.NodeID) []core.EdgeID
	visit = func(u core.NodeID) []core.EdgeID {
		state[u] = Gray
		for _, e := range g.Out(u) {
			if !allow(e) {
				continue
			}
			v := g.Edge(e).To
			switch state[v] {
			case Gray:
				// Back edge: walk the stack from u back to v.
				cycle := []core.EdgeID{e}
				for w := u; w != v; w = g.Edge(via[w]).From {
					cycle = append(cycle, via[w])
				}
				return lo.Reverse(cycle)
			case White:
				via[v] = e
				if c := visit(v); c != nil {
					return c
				}
			}
		}
		state[u] = Black
		return nil
	}

	for u := 0; u < g.NumNodes(); u++ {
		if state[u] == White {
			if c := visit(core.NodeID(u)); c != nil {
				return c
			}
		}
	}
	return nil
}

// dsu is a disjoint-set forest with path compression and union by rank.
type dsu struct {
	parent []int
	rank   []int
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *dsu) find(u int) int {
	for d.parent[u] != u {
		d.parent[u] = d.parent[d.parent[u]]
		u = d.parent[u]
	}
	return u
}

// union merges the sets of u and v and reports whether they were distinct.
func (d *dsu) union(u, v int) bool {
	ru, rv := d.find(u), d.find(v)
	if ru == rv {
		return false
	}
	if d.rank[ru] < d.rank[rv] {
		d.parent[ru] = rv
	} else {
		d.parent[rv] = ru
		if d.rank[ru] == d.rank[rv] {
			d.rank[ru]++
		}
	}
	return true
}

// findUndirected adds allowed edges in ID order to a spanning forest; the
// first edge joining two already connected nodes closes a cycle.
func findUndirected(g *core.Graph, allow Allow) []core.EdgeID {
	d := newDSU(g.NumNodes())
	forest := make([][]core.EdgeID, g.NumNodes())
	for _, edge := range g.Edges() {
		if !allow(edge.ID) {
			continue
		}
		if d.union(int(edge.From), int(edge.To)) {
			forest[edge.From] = append(forest[edge.From], edge.ID)
			forest[edge.To] = append(forest[edge.To], edge.ID)
			continue
		}
		return append([]core.EdgeID{edge.ID}, forestPath(g, forest, edge.To, edge.From)...)
	}
	return nil
}

// forestPath returns the forest edges on the unique path from u to v.
func forestPath(g *core.Graph, forest [][]core.EdgeID, u, v core.NodeID) []core.EdgeID {
	via := make(map[core.NodeID]core.EdgeID, len(forest))
	seen := map[core.NodeID]bool{u: true}
	queue := []core.NodeID{u}
	for i := 0; i < len(queue) && !seen[v]; i++ {
		x := queue[i]
		for _, e := range forest[x] {
			y := other(g.Edge(e), x)
			if seen[y] {
				continue
			}
			seen[y] = true
			via[y] = e
			queue = append(queue, y)
		}
	}
	var path []core.EdgeID
	for x := v; x != u; x = other(g.Edge(via[x]), x) {
		path = append(path, via[x])
	}
	return lo.Reverse(path)
}

func other(e core.Edge, x core.NodeID) core.NodeID {
	if e.From == x {
		return e.To
	}
	return e.From
}

// ClosingCycle returns a cycle through e among the edges allow accepts, or
// nil when e closes none. The cycle starts with e and continues along the
// shortest path from e's head back to its tail; e itself is never reused.
//
// Complexity: O(V + E).
func ClosingCycle(g *core.Graph, e core.EdgeID, directed bool, allow Allow) []core.EdgeID {
	edge := g.Edge(e)
	if edge.From == edge.To {
		return []core.EdgeID{e}
	}
	dirs := []core.Direction{core.Forward}
	if !directed {
		dirs = append(dirs, core.Backward)
	}
	via := make(map[core.NodeID]core.EdgeID)
	seen := map[core.NodeID]bool{edge.To: true}
	queue := []core.NodeID{edge.To}
	for i := 0; i < len(queue) && !seen[edge.From]; i++ {
		u := queue[i]
		for _, d := range dirs {
			for _, id := range g.Adjacent(u, d) {
				if id == e || !allow(id) {
					continue
				}
				v := g.Edge(id).Head(d)
				if seen[v] {
					continue
				}
				seen[v] = true
				via[v] = id
				queue = append(queue, v)
			}
		}
	}
	if !seen[edge.From] {
		return nil
	}
	var path []core.EdgeID
	for x := edge.From; x != edge.To; x = other(g.Edge(via[x]), x) {
		path = append(path, via[x])
	}
	return append([]core.EdgeID{e}, lo.Reverse(path)...)
}
