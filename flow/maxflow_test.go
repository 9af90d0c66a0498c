package flow_test

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/graphsat/core"
	"github.com/katalvlaran/graphsat/flow"
	"github.com/katalvlaran/graphsat/theory"
)

type MaxFlowSuite struct {
	suite.Suite
	g     *core.Graph
	c     *theory.Coordinator
	p     *flow.MaxFlow
	geq   z.Lit // maxflow(0,3) ≥ 3
	leq   z.Lit // maxflow(0,3) ≤ 4
	level int
}

func (s *MaxFlowSuite) SetupTest() {
	s.g = diamond(s.T())
	s.c = theory.NewCoordinator()
	s.p = flow.NewMaxFlow(s.g, s.c.Reader(), flow.WithAlgorithm(flow.EdmondsKarp))
	s.geq, s.leq = lit(20), lit(21)
	s.p.AddAtom(s.geq, 0, 3, theory.GEQ, core.ConstWeight(3))
	s.p.AddAtom(s.leq, 0, 3, theory.LEQ, core.ConstWeight(4))

	s.c.Attach(s.p)
	for _, e := range s.g.Edges() {
		s.c.Watch(e.Lit.Var(), s.p)
	}
	s.c.Watch(s.geq.Var(), s.p)
	s.c.Watch(s.leq.Var(), s.p)
	s.level = 0
}

func (s *MaxFlowSuite) decide(m z.Lit) {
	s.level++
	s.c.Assign(m, s.level)
}

func (s *MaxFlowSuite) value(m z.Lit) theory.Value { return s.c.Reader().Value(m) }

func (s *MaxFlowSuite) TestUndecidedAtStart() {
	s.Require().Empty(s.p.Propagate())
}

func (s *MaxFlowSuite) TestCutProvesUpperBound() {
	s.decide(lit(2).Not()) // drop 0→1
	s.c.Propagate(false)

	s.Require().Equal(theory.False, s.value(s.geq))
	s.Require().Equal(theory.True, s.value(s.leq))
	s.Require().Equal([]z.Lit{lit(2).Not()}, s.p.Explain(s.geq.Not()))
}

func (s *MaxFlowSuite) TestEnabledFlowProvesLowerBound() {
	for _, m := range []z.Lit{lit(2), lit(3), lit(4), lit(5)} {
		s.decide(m)
	}
	s.c.Propagate(false)
	s.Require().Equal(theory.True, s.value(s.geq))
	s.Require().Equal(theory.Unknown, s.value(s.leq))
	s.Require().Equal([]z.Lit{lit(2), lit(3), lit(4), lit(5)}, s.p.Explain(s.geq))

	v, ok := s.p.Value(s.geq)
	s.Require().True(ok)
	s.Require().Equal(int64(4), v)
	f, ok := s.p.EdgeFlow(s.geq, 0, true)
	s.Require().True(ok)
	s.Require().Equal(int64(2), f)
	f, _ = s.p.EdgeFlow(s.geq, 4, false)
	s.Require().Zero(f)

	s.decide(lit(6).Not()) // drop 1→2: high falls to 4
	s.c.Propagate(false)
	s.Require().Equal(theory.True, s.value(s.leq))
	s.Require().Equal([]z.Lit{lit(6).Not()}, s.p.Explain(s.leq))
}

func (s *MaxFlowSuite) TestBacktrackRestoresCapacities() {
	s.decide(lit(2).Not())
	s.c.Propagate(false)
	s.Require().Equal(theory.False, s.value(s.geq))

	s.c.Backtrack(0)
	s.Require().Equal(theory.Unknown, s.value(s.geq))
	s.Require().Empty(s.p.Propagate())

	_, ok := s.p.Value(lit(40))
	s.Require().False(ok)
}

func (s *MaxFlowSuite) TestSuggestFlowCarryingEdges() {
	s.Require().Empty(s.p.Suggest())

	s.decide(s.geq)
	s.decide(lit(6).Not()) // drop 1→2: two disjoint paths of 2 remain
	s.Require().Equal([]z.Lit{lit(2), lit(3), lit(4), lit(5)}, s.p.Suggest())

	s.decide(lit(2))
	s.decide(lit(3))
	s.Require().Equal([]z.Lit{lit(4), lit(5)}, s.p.Suggest())

	s.decide(lit(4))
	s.decide(lit(5))
	s.Require().Empty(s.p.Suggest(), "low flow 4 meets the bound")
}

func TestMaxFlowSuite(t *testing.T) {
	suite.Run(t, new(MaxFlowSuite))
}
