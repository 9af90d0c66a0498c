package bfs

import (
	"github.com/samber/lo"

	"github.com/katalvlaran/graphsat/core"
)

// Allow reports whether an edge may be traversed.
type Allow func(e core.EdgeID) bool

// Tree is the result of a breadth-first walk.
type Tree struct {
	Source core.NodeID
	Dir    core.Direction

	// Seen[v] reports whether v was reached.
	Seen []bool

	// Parent[v] is the edge v was first reached through, or core.NoEdge.
	Parent []core.EdgeID

	// Depth[v] is the hop count along the tree, or -1.
	Depth []int

	// Order lists reached nodes in visit order.
	Order []core.NodeID
}

// walker holds the mutable state of one walk.
type walker struct {
	g     *core.Graph
	allow Allow
	t     *Tree
	queue []core.NodeID
}

// Walk runs BFS from source over the edges allow accepts, in direction dir.
//
// Steps:
//  1. Mark source reached at depth 0.
//  2. Dequeue u; scan Adjacent(u, dir) in (head, ID) order.
//  3. Enqueue every unseen head of an allowed edge with that edge as parent.
//
// Complexity: O(V + E) time, O(V) space.
func Walk(g *core.Graph, source core.NodeID, dir core.Direction, allow Allow) *Tree {
	n := g.NumNodes()
	t := &Tree{
		Source: source,
		Dir:    dir,
		Seen:   make([]bool, n),
		Parent: make([]core.EdgeID, n),
		Depth:  make([]int, n),
		Order:  make([]core.NodeID, 0, n),
	}
	for i := range t.Parent {
		t.Parent[i] = core.NoEdge
		t.Depth[i] = -1
	}
	w := &walker{g: g, allow: allow, t: t, queue: make([]core.NodeID, 0, n)}
	w.enqueue(source, core.NoEdge, 0)
	w.loop()

	return t
}

// Extend grows t after edge e became traversable. It is a no-op unless e
// leaves a reached node toward an unreached one.
// Complexity: O(V' + E') over the newly reached nodes.
func (t *Tree) Extend(g *core.Graph, e core.EdgeID, allow Allow) {
	edge := g.Edge(e)
	tail, head := edge.Tail(t.Dir), edge.Head(t.Dir)
	if !t.Seen[tail] || t.Seen[head] {
		return
	}
	w := &walker{g: g, allow: allow, t: t}
	w.enqueue(head, e, t.Depth[tail]+1)
	w.loop()
}

// PathTo returns the tree path from the source to target as nodes and edges,
// oriented from the source. ok is false when target was not reached.
func (t *Tree) PathTo(g *core.Graph, target core.NodeID) (nodes []core.NodeID, edges []core.EdgeID, ok bool) {
	if !t.Seen[target] {
		return nil, nil, false
	}
	for v := target; t.Parent[v] != core.NoEdge; v = g.Edge(t.Parent[v]).Tail(t.Dir) {
		edges = append(edges, t.Parent[v])
	}
	edges = lo.Reverse(edges)

	nodes = make([]core.NodeID, 0, len(edges)+1)
	nodes = append(nodes, t.Source)
	for _, e := range edges {
		nodes = append(nodes, g.Edge(e).Head(t.Dir))
	}

	return nodes, edges, true
}

func (w *walker) enqueue(v core.NodeID, parent core.EdgeID, depth int) {
	w.t.Seen[v] = true
	w.t.Parent[v] = parent
	w.t.Depth[v] = depth
	w.t.Order = append(w.t.Order, v)
	w.queue = append(w.queue, v)
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		u := w.queue[0]
		w.queue = w.queue[1:]
		for _, e := range w.g.Adjacent(u, w.t.Dir) {
			head := w.g.Edge(e).Head(w.t.Dir)
			if w.t.Seen[head] || !w.allow(e) {
				continue
			}
			w.enqueue(head, e, w.t.Depth[u]+1)
		}
	}
}
