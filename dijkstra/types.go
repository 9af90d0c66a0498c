package dijkstra

import (
	"math"

	"github.com/katalvlaran/graphsat/core"
)

// Inf is the distance of an unreachable node.
const Inf int64 = math.MaxInt64

// Name is the propagator name used in lemmas and metrics.
const Name = "distance"

// WeightFn returns the weight of an edge and whether it may be used at all.
type WeightFn func(e core.EdgeID) (w int64, ok bool)

// Tree is a shortest-path tree from Source.
type Tree struct {
	Source core.NodeID

	// Dist[v] is the best known distance to v, or Inf.
	Dist []int64

	// Prev[v] is the last edge of the best known path to v, or core.NoEdge.
	Prev []core.EdgeID
}

// nodeItem represents a node and its tentative distance in the heap.
type nodeItem struct {
	id   core.NodeID
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, id). Stale entries are
// skipped on pop rather than removed.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// add returns a+b, saturating at Inf.
func add(a, b int64) int64 {
	if a == Inf || b >= Inf-a {
		return Inf
	}
	return a + b
}
