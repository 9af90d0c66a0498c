package flow

import (
	"math"

	"github.com/katalvlaran/graphsat/core"
)

// Network is a flow network over the edges of a core.Graph with one flow
// value per edge.
type Network struct {
	g      *core.Graph
	source core.NodeID
	sink   core.NodeID
	cap    []int64
	flow   []int64
	value  int64
}

// arc is a residual arc: forward along e (spare capacity) or backward
// against e (cancellable flow).
type arc struct {
	edge    core.EdgeID
	forward bool
}

// NewNetwork returns an empty network from source to sink with all
// capacities zero.
func NewNetwork(g *core.Graph, source, sink core.NodeID) *Network {
	return &Network{
		g:      g,
		source: source,
		sink:   sink,
		cap:    make([]int64, g.NumEdges()),
		flow:   make([]int64, g.NumEdges()),
	}
}

// Value returns the current flow value.
func (n *Network) Value() int64 { return n.value }

// Flow returns the flow on edge e.
func (n *Network) Flow(e core.EdgeID) int64 { return n.flow[e] }

// Flows returns a copy of every edge flow, indexed by EdgeID.
func (n *Network) Flows() []int64 {
	out := make([]int64, len(n.flow))
	copy(out, n.flow)
	return out
}

// SetCaps installs new capacities. The current flow is kept when it still
// fits; otherwise it is dropped and Augment starts over.
func (n *Network) SetCaps(capacity func(e core.EdgeID) int64) {
	fits := true
	for i := range n.cap {
		c := capacity(core.EdgeID(i))
		if edge := n.g.Edge(core.EdgeID(i)); edge.From == edge.To {
			c = 0
		}
		n.cap[i] = c
		if n.flow[i] > c {
			fits = false
		}
	}
	if !fits {
		for i := range n.flow {
			n.flow[i] = 0
		}
		n.value = 0
	}
}

// Augment pushes flow until no augmenting path remains and returns the
// resulting maximum flow value.
func (n *Network) Augment(alg Algorithm) int64 {
	if n.source == n.sink {
		return 0
	}
	if alg == EdmondsKarp {
		n.edmondsKarp()
	} else {
		n.dinic()
	}
	return n.value
}

// residual returns the spare capacity of a.
func (n *Network) residual(a arc) int64 {
	if a.forward {
		return n.cap[a.edge] - n.flow[a.edge]
	}
	return n.flow[a.edge]
}

// next returns the node a leads to.
func (n *Network) next(a arc) core.NodeID {
	edge := n.g.Edge(a.edge)
	if a.forward {
		return edge.To
	}
	return edge.From
}

func (n *Network) push(a arc, amount int64) {
	if a.forward {
		n.flow[a.edge] += amount
	} else {
		n.flow[a.edge] -= amount
	}
}

// arcs lists the residual arcs leaving u: out-edges forward, then in-edges
// backward.
func (n *Network) arcs(u core.NodeID) []arc {
	out, in := n.g.Out(u), n.g.In(u)
	as := make([]arc, 0, len(out)+len(in))
	for _, e := range out {
		as = append(as, arc{edge: e, forward: true})
	}
	for _, e := range in {
		as = append(as, arc{edge: e, forward: false})
	}
	return as
}

// levels runs BFS over residual arcs and returns hop levels, -1 if unseen.
func (n *Network) levels() []int {
	level := make([]int, n.g.NumNodes())
	for i := range level {
		level[i] = -1
	}
	level[n.source] = 0
	queue := []core.NodeID{n.source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, a := range n.arcs(u) {
			v := n.next(a)
			if level[v] < 0 && n.residual(a) > 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return level
}

// dinic augments with level graphs and blocking flows.
//
// Steps:
//  1. BFS levels over the residual network; stop when the sink is unseen.
//  2. DFS from the source along arcs that climb one level, with a per-node
//     iterator so saturated arcs are never retried in the same phase.
//  3. Repeat pushes until the blocking flow is found.
func (n *Network) dinic() {
	for {
		level := n.levels()
		if level[n.sink] < 0 {
			return
		}
		adj := make([][]arc, n.g.NumNodes())
		for u := range adj {
			adj[u] = n.arcs(core.NodeID(u))
		}
		iter := make([]int, n.g.NumNodes())
		for {
			pushed := n.dinicPush(adj, level, iter, n.source, math.MaxInt64)
			if pushed == 0 {
				break
			}
			n.value += pushed
		}
	}
}

func (n *Network) dinicPush(adj [][]arc, level, iter []int, u core.NodeID, available int64) int64 {
	if u == n.sink {
		return available
	}
	for ; iter[u] < len(adj[u]); iter[u]++ {
		a := adj[u][iter[u]]
		v := n.next(a)
		res := n.residual(a)
		if res <= 0 || level[v] != level[u]+1 {
			continue
		}
		send := available
		if res < send {
			send = res
		}
		if pushed := n.dinicPush(adj, level, iter, v, send); pushed > 0 {
			n.push(a, pushed)
			return pushed
		}
	}
	return 0
}

// edmondsKarp augments along BFS shortest residual paths.
func (n *Network) edmondsKarp() {
	for {
		parent := make([]arc, n.g.NumNodes())
		seen := make([]bool, n.g.NumNodes())
		seen[n.source] = true
		queue := []core.NodeID{n.source}
		for i := 0; i < len(queue) && !seen[n.sink]; i++ {
			u := queue[i]
			for _, a := range n.arcs(u) {
				v := n.next(a)
				if seen[v] || n.residual(a) <= 0 {
					continue
				}
				seen[v] = true
				parent[v] = a
				queue = append(queue, v)
			}
		}
		if !seen[n.sink] {
			return
		}

		bottle := int64(math.MaxInt64)
		for v := n.sink; v != n.source; v = n.prev(parent[v]) {
			if r := n.residual(parent[v]); r < bottle {
				bottle = r
			}
		}
		for v := n.sink; v != n.source; v = n.prev(parent[v]) {
			n.push(parent[v], bottle)
		}
		n.value += bottle
	}
}

// prev returns the node a starts from.
func (n *Network) prev(a arc) core.NodeID {
	edge := n.g.Edge(a.edge)
	if a.forward {
		return edge.From
	}
	return edge.To
}

// SourceSide returns the nodes reachable from the source in the residual
// network. After Augment, the edges leaving this set form a minimum cut.
func (n *Network) SourceSide() []bool {
	side := make([]bool, n.g.NumNodes())
	side[n.source] = true
	queue := []core.NodeID{n.source}
	for i := 0; i < len(queue); i++ {
		for _, a := range n.arcs(queue[i]) {
			v := n.next(a)
			if !side[v] && n.residual(a) > 0 {
				side[v] = true
				queue = append(queue, v)
			}
		}
	}
	return side
}

// AcyclicFlows returns the edge flows with every flow cycle cancelled. The
// flow value is unchanged.
func (n *Network) AcyclicFlows() []int64 {
	f := n.Flows()
	for {
		cycle := findFlowCycle(n.g, f)
		if len(cycle) == 0 {
			return f
		}
		least := int64(math.MaxInt64)
		for _, e := range cycle {
			if f[e] < least {
				least = f[e]
			}
		}
		for _, e := range cycle {
			f[e] -= least
		}
	}
}

// findFlowCycle returns the edges of one directed cycle among edges with
// positive flow, or nil.
func findFlowCycle(g *core.Graph, f []int64) []core.EdgeID {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, g.NumNodes())
	via := make([]core.EdgeID, g.NumNodes())

	var visit func(u core.NodeID) []core.EdgeID
	visit = func(u core.NodeID) []core.EdgeID {
		color[u] = grey
		for _, e := range g.Out(u) {
			if f[e] <= 0 {
				continue
			}
			v := g.Edge(e).To
			switch color[v] {
			case grey:
				cycle := []core.EdgeID{e}
				for w := u; w != v; w = g.Edge(via[w]).From {
					cycle = append(cycle, via[w])
				}
				return cycle
			case white:
				via[v] = e
				if c := visit(v); c != nil {
					return c
				}
			}
		}
		color[u] = black
		return nil
	}

	for u := 0; u < g.NumNodes(); u++ {
		if color[u] == white {
			if c := visit(core.NodeID(u)); c != nil {
				return c
			}
		}
	}
	return nil
}
