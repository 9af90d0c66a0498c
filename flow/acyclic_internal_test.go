package flow

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphsat/core"
)

func TestAcyclicFlows_CancelsCirculation(t *testing.T) {
	g, err := core.NewGraph(0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, _ = g.AddNode()
	}
	// e0: 0→1, e1: 1→2, e2: 2→1, e3: 1→2 (parallel)
	pairs := [][2]core.NodeID{{0, 1}, {1, 2}, {2, 1}, {1, 2}}
	for i, p := range pairs {
		_, err := g.AddEdge(p[0], p[1], core.ConstWeight(4), z.Var(i+2).Pos())
		require.NoError(t, err)
	}
	g.Freeze()

	n := NewNetwork(g, 0, 2)
	// 2 units 0→1→2 plus circulations 1→2→1 through e1, e2 and e3.
	n.flow = []int64{2, 2, 3, 3}
	n.value = 2

	f := n.AcyclicFlows()
	require.Equal(t, []int64{2, 0, 0, 2}, f)
	require.Equal(t, []int64{2, 2, 3, 3}, n.Flows(), "network flow untouched")
	require.Nil(t, findFlowCycle(g, f))
}
