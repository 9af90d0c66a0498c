package flow_test

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/flow"
)

func lit(v int) z.Lit { return z.Var(v).Pos() }

type link struct {
	from, to core.NodeID
	cap      int64
}

// build returns a frozen graph with n nodes; edge i is controlled by
// variable i+2.
func build(t *testing.T, n int, edges []link) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(0)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := g.AddNode()
		require.NoError(t, err)
	}
	for i, e := range edges {
		_, err := g.AddEdge(e.from, e.to, core.ConstWeight(e.cap), lit(i+2))
		require.NoError(t, err)
	}
	g.Freeze()
	return g
}

// diamond: 0→1 (3), 0→2 (2), 1→3 (2), 2→3 (3), 1→2 (1). Max flow 0→3 is 5.
func diamond(t *testing.T) *core.Graph {
	return build(t, 4, []link{{0, 1, 3}, {0, 2, 2}, {1, 3, 2}, {2, 3, 3}, {1, 2, 1}})
}

func constCaps(g *core.Graph) func(core.EdgeID) int64 {
	return func(e core.EdgeID) int64 { return g.Edge(e).Weight.Const }
}

func conserved(t *testing.T, g *core.Graph, n *flow.Network, s, sink core.NodeID) {
	t.Helper()
	for v := 0; v < g.NumNodes(); v++ {
		var in, out int64
		for _, e := range g.In(core.NodeID(v)) {
			in += n.Flow(e)
		}
		for _, e := range g.Out(core.NodeID(v)) {
			out += n.Flow(e)
		}
		switch core.NodeID(v) {
		case s:
			require.Equal(t, n.Value(), out-in)
		case sink:
			require.Equal(t, n.Value(), in-out)
		default:
			require.Equal(t, in, out, "node %d", v)
		}
	}
}

func TestNetwork_Algorithms(t *testing.T) {
	for _, alg := range []flow.Algorithm{flow.Dinic, flow.EdmondsKarp} {
		t.Run(alg.String(), func(t *testing.T) {
			g := diamond(t)
			n := flow.NewNetwork(g, 0, 3)
			n.SetCaps(constCaps(g))
			require.Equal(t, int64(5), n.Augment(alg))
			conserved(t, g, n, 0, 3)

			side := n.SourceSide()
			require.Equal(t, []bool{true, false, false, false}, side)
		})
	}
}

func TestNetwork_SetCapsKeepsOrResetsFlow(t *testing.T) {
	g := diamond(t)
	caps := []int64{3, 2, 2, 3, 0}
	n := flow.NewNetwork(g, 0, 3)
	n.SetCaps(func(e core.EdgeID) int64 { return caps[e] })
	require.Equal(t, int64(4), n.Augment(flow.Dinic))

	// Growing a capacity keeps the current flow and augments on top.
	caps[4] = 1
	n.SetCaps(func(e core.EdgeID) int64 { return caps[e] })
	require.Equal(t, int64(4), n.Value())
	require.Equal(t, int64(5), n.Augment(flow.Dinic))

	// Shrinking below the carried flow starts over.
	caps[3] = 1
	n.SetCaps(func(e core.EdgeID) int64 { return caps[e] })
	require.Zero(t, n.Value())
	require.Equal(t, int64(3), n.Augment(flow.EdmondsKarp))
	conserved(t, g, n, 0, 3)
}

func TestNetwork_SelfLoopAndSameEndpoints(t *testing.T) {
	g := build(t, 2, []link{{0, 0, 5}, {0, 1, 2}})
	n := flow.NewNetwork(g, 0, 1)
	n.SetCaps(constCaps(g))
	require.Equal(t, int64(2), n.Augment(flow.Dinic))
	require.Zero(t, n.Flow(0))

	same := flow.NewNetwork(g, 1, 1)
	same.SetCaps(constCaps(g))
	require.Zero(t, same.Augment(flow.Dinic))
}

func TestParseAlgorithm(t *testing.T) {
	a, err := flow.ParseAlgorithm("edmonds-karp")
	require.NoError(t, err)
	require.Equal(t, flow.EdmondsKarp, a)

	a, err = flow.ParseAlgorithm("")
	require.NoError(t, err)
	require.Equal(t, flow.Dinic, a)

	_, err = flow.ParseAlgorithm("push-relabel")
	require.Error(t, err)
}
