package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphsat/solver"
)

// Two weightings of the square. In both, 0→1→3 and 0→2→3 are the only
// paths of length 2, and 0→1→2→3 is strictly longer.
var distanceFixtures = map[string]squareConfig{
	"bitvector": {bitwidth: 4, w12: 2, w23: 1, w23BV: true}, // 0→1→2→3 = 4
	"constant":  {w12: 2, w23: 3},                           // 0→2→3 = 4, 0→1→2→3 = 6
}

func TestDistance_Vector(t *testing.T) {
	for name, cfg := range distanceFixtures {
		t.Run(name, func(t *testing.T) {
			q := newSquare(t, cfg)
			dist, err := q.g.Distance(0, 3)
			require.NoError(t, err)

			run(t, q.s, []step{
				{nil, true},
				{lits(dist.Gt(0)), true},
				{lits(dist.Eq(0)), false},
				{lits(dist.Eq(1)), false},
				{lits(dist.Eq(2)), true},
				{lits(dist.Eq(3)), false},
				{lits(q.all4(), dist.Eq(1)), false},
				{lits(q.all4(), dist.Eq(2)), true},
				{lits(q.all4(), dist.Eq(3)), false},
				{lits(q.e01.Not(), q.e23.Not()), false},
				{lits(q.e02.Not(), q.e13.Not()), true},
				{lits(q.e02.Not(), q.e13.Not(), q.e23.Not()), false},
			})
		})
	}
}

func TestDistance_VectorWidth(t *testing.T) {
	q := newSquare(t, distanceFixtures["constant"])
	dist, err := q.g.Distance(0, 3)
	require.NoError(t, err)
	assert.Equal(t, solver.DefaultResultWidth, dist.Width())

	require.True(t, sat(t, q.s, q.e02.Not(), q.e13.Not()))
	v, err := dist.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)
}

// Expected results per comparison for the shared scenario below.
var compareDistanceCases = map[solver.Comparison][11]bool{
	solver.GEQ: {true, true, true, true, true, true, true, false, true, true, true},
	solver.GT:  {true, true, true, true, true, true, false, false, true, true, true},
	solver.LT:  {true, false, false, false, true, false, false, true, false, true, false},
	solver.LEQ: {true, false, false, true, true, false, true, true, false, true, false},
}

func TestCompareDistance(t *testing.T) {
	for name, cfg := range distanceFixtures {
		for cmp, want := range compareDistanceCases {
			t.Run(name+"/"+cmp.String(), func(t *testing.T) {
				q := newSquare(t, cfg)
				dist, err := q.s.NewBitVector(4)
				require.NoError(t, err)
				d, err := q.g.CompareDistance(0, 3, cmp, dist)
				require.NoError(t, err)
				q.s.AssertTrue(d)

				assumptions := [][]interface{}{
					{dist.Gt(0)},
					{dist.Eq(0)},
					{dist.Eq(1)},
					{dist.Eq(2)},
					{dist.Eq(3)},
					{q.all4(), dist.Eq(1)},
					{q.all4(), dist.Eq(2)},
					{q.all4(), dist.Eq(3)},
					{q.e01.Not(), q.e23.Not()},
					{q.e02.Not(), q.e13.Not()},
					{q.e02.Not(), q.e13.Not(), q.e23.Not(), dist.Eq(1)},
				}
				for i, a := range assumptions {
					assert.Equal(t, want[i], sat(t, q.s, lits(a...)...), "step %d", i)
				}
			})
		}
	}
}

func TestCompareDistanceConst(t *testing.T) {
	q := newSquare(t, distanceFixtures["constant"])
	within2, err := q.g.CompareDistanceConst(0, 3, solver.LEQ, 2)
	require.NoError(t, err)
	again, _ := q.g.CompareDistanceConst(0, 3, solver.LEQ, 2)
	require.Equal(t, within2, again)
	beyond5, _ := q.g.CompareDistanceConst(0, 3, solver.GT, 5)

	run(t, q.s, []step{
		{lits(within2), true},
		{lits(within2, q.e13.Not(), q.e23.Not()), false},
		{lits(beyond5, q.e02.Not(), q.e13.Not()), true},
		{lits(beyond5, q.e02, q.e23), false},
		{lits(beyond5, q.e01.Not(), q.e23.Not()), true},
	})

	_, err = q.g.CompareDistanceConst(0, 3, solver.LEQ, -1)
	require.ErrorIs(t, err, solver.ErrValueOutOfRange)
}
