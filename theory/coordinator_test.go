package theory_test

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/graphsat/theory"
)

// implication is a scripted rule of the fake propagator: when every literal
// in If is true, Then is implied.
type implication struct {
	If   []z.Lit
	Then z.Lit
}

// scripted is a Propagator whose behavior is a list of Horn rules evaluated
// against the coordinator's reader.
type scripted struct {
	name     string
	r        theory.Reader
	rules    []implication
	hints    []z.Lit
	assigned []z.Lit
	backs    []int
}

func (s *scripted) Name() string              { return s.name }
func (s *scripted) Assign(m z.Lit, level int) { s.assigned = append(s.assigned, m) }
func (s *scripted) Backtrack(level int)       { s.backs = append(s.backs, level) }

func (s *scripted) Propagate() []z.Lit {
	var out []z.Lit
	for _, rule := range s.rules {
		if s.fires(rule) {
			out = append(out, rule.Then)
		}
	}
	return out
}

func (s *scripted) Explain(m z.Lit) []z.Lit {
	for _, rule := range s.rules {
		if rule.Then == m && s.fires(rule) {
			return rule.If
		}
	}
	return nil
}

func (s *scripted) Suggest() []z.Lit { return s.hints }

func (s *scripted) fires(rule implication) bool {
	for _, m := range rule.If {
		if s.r.Value(m) != theory.True {
			return false
		}
	}
	return true
}

type CoordinatorSuite struct {
	suite.Suite
	c *theory.Coordinator
	p *scripted
	a, b, x z.Lit
}

func (s *CoordinatorSuite) SetupTest() {
	s.c = theory.NewCoordinator()
	s.a, s.b, s.x = z.Var(2).Pos(), z.Var(3).Pos(), z.Var(4).Pos()
	s.p = &scripted{
		name:  "fake",
		r:     s.c.Reader(),
		rules: []implication{{If: []z.Lit{s.a, s.b}, Then: s.x}},
	}
	s.c.Attach(s.p)
	s.c.Attach(s.p) // idempotent
	for _, m := range []z.Lit{s.a, s.b, s.x} {
		s.c.Watch(m.Var(), s.p)
	}
}

func (s *CoordinatorSuite) TestWatchOrderAndDispatch() {
	s.c.Assign(s.a, 1)
	s.Require().Equal([]z.Lit{s.a}, s.p.assigned, "attached once, notified once")
	s.Require().Equal(theory.True, s.c.Reader().Value(s.a))
	s.Require().Equal(theory.False, s.c.Reader().Value(s.a.Not()))
	s.Require().Equal(1, s.c.Reader().Level(s.a.Var()))
}

func (s *CoordinatorSuite) TestPropagateAssignsUnknownWithReason() {
	s.c.Assign(s.a, 1)
	s.c.Assign(s.b, 2)

	out := s.c.Propagate(false)
	s.Require().Empty(out.Lemmas)
	s.Require().Equal(1, out.Implied["fake"])
	s.Require().Equal(theory.True, s.c.Reader().Value(s.x))
	s.Require().Equal(2, s.c.Reader().Level(s.x.Var()), "implied at the current level")
	s.Require().Equal([]z.Lit{s.a, s.b}, s.p.Explain(s.x))
}

func (s *CoordinatorSuite) TestPropagateConflictClause() {
	s.c.Assign(s.x.Not(), 1)
	s.c.Assign(s.a, 2)
	s.c.Assign(s.b, 3)

	out := s.c.Propagate(false)
	s.Require().Equal(1, out.Conflicts())
	s.Require().Equal("fake", out.Lemmas[0].Source)
	s.Require().Equal([]z.Lit{s.x, s.a.Not(), s.b.Not()}, out.Lemmas[0].Clause)
}

func (s *CoordinatorSuite) TestPropagateLearnsConsistentImplications() {
	s.c.Assign(s.a, 1)
	s.c.Assign(s.b, 2)
	s.c.Assign(s.x, 3)

	out := s.c.Propagate(true)
	s.Require().Len(out.Lemmas, 1)
	s.Require().False(out.Lemmas[0].Conflict)
	s.Require().Zero(out.Conflicts())
}

func (s *CoordinatorSuite) TestBacktrackRetractsAndNotifies() {
	s.c.Assign(s.a, 1)
	s.c.Assign(s.b, 2)
	s.c.Propagate(false)

	s.c.Backtrack(1)
	s.Require().Equal([]int{1}, s.p.backs)
	s.Require().Equal(theory.Unknown, s.c.Reader().Value(s.b))
	s.Require().Equal(theory.Unknown, s.c.Reader().Value(s.x))
	s.Require().Equal(1, s.c.Level())

	// Nothing to undo: propagators are not bothered.
	s.c.Backtrack(1)
	s.Require().Len(s.p.backs, 1)
}

func (s *CoordinatorSuite) TestReplayReusesAgreeingPrefix() {
	model := map[z.Var]bool{2: true, 3: true, 4: true}
	value := func(m z.Lit) bool { return model[m.Var()] == m.IsPos() }

	s.Require().Equal(0, s.c.Replay(value))
	s.Require().Equal(3, s.c.Trail().Len())
	s.Require().Equal(3, s.c.Level())

	// Same model: everything reused.
	s.Require().Equal(3, s.c.Replay(value))

	// Flip the second variable: only the first assignment survives.
	model[3] = false
	s.Require().Equal(1, s.c.Replay(value))
	s.Require().Equal(theory.False, s.c.Reader().Value(s.b))
	s.Require().Equal(theory.True, s.c.Reader().Value(s.x))
	tr := s.c.Trail()
	s.Require().Equal(3, tr.Len())
	s.Require().Equal([]z.Lit{s.a, s.b.Not(), s.x}, []z.Lit{tr.At(0), tr.At(1), tr.At(2)})
}

func (s *CoordinatorSuite) TestReplayKeepsExtendedLevels() {
	_, ok := s.c.Extend([]z.Lit{s.b, s.a})
	s.Require().True(ok)

	all := func(m z.Lit) bool { return m.IsPos() }
	s.Require().Equal(2, s.c.Replay(all), "order within the trail does not matter")
	s.Require().Equal(3, s.c.Trail().Len())
	s.Require().Equal(s.x, s.c.Trail().At(2))
	s.Require().Equal(2, s.c.Level())
}

func (s *CoordinatorSuite) TestExtendAssignsOneLevel() {
	unwatched := z.Var(9).Pos()

	level, ok := s.c.Extend([]z.Lit{s.a, unwatched, s.b, s.a})
	s.Require().True(ok)
	s.Require().Equal(1, level)
	s.Require().Equal(2, s.c.Trail().Len(), "unwatched and repeated literals are skipped")
	s.Require().Equal(1, s.c.Reader().Level(s.b.Var()))

	s.c.Propagate(false)
	s.Require().Equal(theory.True, s.c.Reader().Value(s.x))

	_, ok = s.c.Extend([]z.Lit{s.x.Not()})
	s.Require().False(ok)
	s.Require().Equal(3, s.c.Trail().Len())

	s.c.Backtrack(0)
	level, ok = s.c.Extend([]z.Lit{s.x.Not()})
	s.Require().True(ok)
	s.Require().Equal(1, level)
}

func (s *CoordinatorSuite) TestSuggestDropsAssigned() {
	s.p.hints = []z.Lit{s.a, s.b, s.a}
	s.Require().Equal([]z.Lit{s.a, s.b}, s.c.Suggest())

	s.c.Assign(s.a.Not(), 1)
	s.Require().Equal([]z.Lit{s.b}, s.c.Suggest())
}

func (s *CoordinatorSuite) TestSuggestFirstPolarityWins() {
	s.p.hints = []z.Lit{s.b.Not(), s.x, s.b}
	s.Require().Equal([]z.Lit{s.b.Not(), s.x}, s.c.Suggest())
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}
