package solver_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphsat/metrics"
	"github.com/katalvlaran/graphsat/solver"
)

func TestSolve_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	q := newSquare(t, squareConfig{opts: []solver.Option{solver.WithMetrics(rec)}})
	r, _ := q.g.Reaches(0, 3)
	run(t, q.s, []step{
		{lits(r), true},
		{lits(r, q.e01.Not(), q.e23.Not()), false},
	})

	n, err := testutil.GatherAndCount(reg, "graphsat_solve_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per result")

	n, err = testutil.GatherAndCount(reg, "graphsat_theory_conflicts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the reach propagator raised conflicts")
}

func TestSolve_LogsRounds(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	q := newSquare(t, squareConfig{opts: []solver.Option{solver.WithLogger(logger)}})
	r, _ := q.g.Reaches(0, 3)
	require.True(t, sat(t, q.s, r))

	var rounds int
	for _, e := range hook.AllEntries() {
		if e.Message == "refinement round" {
			rounds++
			assert.Contains(t, e.Data, "conflicts")
		}
	}
	assert.Equal(t, q.s.Rounds(), rounds)
}
