package solver_test

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/graphsat/solver"
)

type ReachSuite struct {
	suite.Suite
	q *square
}

func (s *ReachSuite) SetupTest() {
	s.q = newSquare(s.T(), squareConfig{})
}

// checkWitness verifies path shape: endpoints, enabled edges and
// len(nodes) == len(edges)+1.
func (s *ReachSuite) checkWitness(m z.Lit, from, to solver.NodeID) ([]solver.NodeID, []z.Lit) {
	nodes, err := s.q.g.GetPathNodes(m)
	s.Require().NoError(err)
	edges, err := s.q.g.GetPathEdges(m)
	s.Require().NoError(err)

	s.Require().Len(nodes, len(edges)+1)
	s.Equal(from, nodes[0])
	s.Equal(to, nodes[len(nodes)-1])
	for _, e := range edges {
		s.True(s.q.s.Value(e), "witness edge must be enabled")
	}
	return nodes, edges
}

func (s *ReachSuite) TestReaches() {
	q := s.q
	r, err := q.g.Reaches(0, 3)
	s.Require().NoError(err)
	again, _ := q.g.Reaches(0, 3)
	s.Equal(r, again)

	run(s.T(), q.s, []step{
		{lits(r), true},
		{lits(r, q.e01.Not(), q.e23.Not()), false},
		{lits(r, q.e02.Not(), q.e13.Not()), true},
		{lits(r, q.e02.Not(), q.e13.Not(), q.e23.Not()), false},
		{lits(r, q.e02.Not(), q.e13.Not()), true},
	})

	// Only 0→1→2→3 remains.
	nodes, edges := s.checkWitness(r, 0, 3)
	s.Equal([]solver.NodeID{0, 1, 2, 3}, nodes)
	s.Equal([]z.Lit{q.e01, q.e12, q.e23}, edges)
	s.False(q.s.Value(q.e02))
	s.False(q.s.Value(q.e13))

	s.True(sat(s.T(), q.s, r))
	s.checkWitness(r, 0, 3)
}

func (s *ReachSuite) TestReachesBackward() {
	q := s.q
	r, _ := q.g.ReachesBackward(3, 0)
	r2, _ := q.g.ReachesBackward(0, 3)
	s.NotEqual(r, r2)

	run(s.T(), q.s, []step{
		{lits(r), true},
		{lits(r2), false},
		{lits(r), true},
		{lits(r, q.e01.Not(), q.e23.Not()), false},
		{lits(r, q.e02.Not(), q.e13.Not()), true},
		{lits(r, q.e02.Not(), q.e13.Not(), q.e23.Not()), false},
		{lits(r, q.e02.Not(), q.e13.Not()), true},
	})

	nodes, edges := s.checkWitness(r, 3, 0)
	s.Equal([]solver.NodeID{3, 2, 1, 0}, nodes)
	s.Equal([]z.Lit{q.e23, q.e12, q.e01}, edges)
}

func (s *ReachSuite) TestOnPath() {
	q := s.q
	r, err := q.g.OnPath(1, 0, 3)
	s.Require().NoError(err)
	r2, _ := q.g.OnPath(1, 0, 3)
	s.Equal(r, r2)

	s.True(sat(s.T(), q.s, r))
	s.True(q.s.Value(r))
	s.True(q.s.Value(r2))
	run(s.T(), q.s, []step{
		{lits(r, q.e01.Not(), q.e23.Not()), false},
		{lits(r, q.e02.Not(), q.e13.Not()), true},
		{lits(r, q.e02.Not(), q.e13.Not(), q.e23.Not()), false},
		{lits(r, q.e02.Not(), q.e13.Not()), true},
	})

	nodes, edges := s.checkWitness(r, 0, 3)
	s.Equal([]solver.NodeID{0, 1, 2, 3}, nodes)
	s.Equal([]z.Lit{q.e01, q.e12, q.e23}, edges)

	nodes2, err := q.g.GetPathNodes(r2)
	s.Require().NoError(err)
	s.Equal(len(nodes), len(nodes2))

	s.True(sat(s.T(), q.s, r))
}

func (s *ReachSuite) TestOnPathThroughMiddle() {
	q := s.q
	r, _ := q.g.OnPath(2, 0, 3)
	s.True(sat(s.T(), q.s, r, q.e02.Not()))
	nodes, _ := s.checkWitness(r, 0, 3)
	s.Contains(nodes, solver.NodeID(2))
	s.True(q.s.Value(q.e12))
}

func (s *ReachSuite) TestSelfReachAndNegation() {
	q := s.q
	self, _ := q.g.Reaches(2, 2)
	s.True(sat(s.T(), q.s, self, q.e01.Not(), q.e02.Not(), q.e12.Not()))
	s.False(sat(s.T(), q.s, self.Not()))

	folded, _ := q.g.OnPath(2, 2, 2)
	s.Equal(self, folded)

	r, _ := q.g.Reaches(0, 3)
	s.True(sat(s.T(), q.s, r.Not()))
	s.False(q.s.Value(q.e01) && q.s.Value(q.e13))
	s.False(q.s.Value(q.e02) && q.s.Value(q.e23))
}

func (s *ReachSuite) TestMonotoneUnderRemoval() {
	q := s.q
	r, _ := q.g.Reaches(0, 3)
	base := lits(q.e01.Not(), q.e23.Not())
	s.False(sat(s.T(), q.s, lits(r, base)...))
	s.False(sat(s.T(), q.s, lits(r, base, q.e02.Not())...))
	s.False(sat(s.T(), q.s, lits(r, base, q.e12.Not(), q.e13.Not())...))
}

func TestReachSuite(t *testing.T) {
	suite.Run(t, new(ReachSuite))
}
