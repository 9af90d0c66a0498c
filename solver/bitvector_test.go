package solver_test

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphsat/solver"
)

func TestBitVector_Widths(t *testing.T) {
	s := solver.New()
	for _, w := range []int{0, -1, solver.MaxWidth + 1} {
		_, err := s.NewBitVector(w)
		assert.ErrorIs(t, err, solver.ErrBadWidth, "width %d", w)
		_, err = s.ConstBitVector(w, 0)
		assert.ErrorIs(t, err, solver.ErrBadWidth, "width %d", w)
	}
	_, err := s.ConstBitVector(3, 8)
	require.ErrorIs(t, err, solver.ErrValueOutOfRange)
	_, err = s.ConstBitVector(3, -1)
	require.ErrorIs(t, err, solver.ErrValueOutOfRange)

	bv, err := s.NewBitVector(solver.MaxWidth)
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<solver.MaxWidth-1, bv.Max())
	assert.Len(t, bv.Bits(), solver.MaxWidth)
}

func TestBitVector_Const(t *testing.T) {
	s := solver.New()
	bv, err := s.ConstBitVector(4, 5)
	require.NoError(t, err)
	v, ok := bv.Const()
	require.True(t, ok)
	assert.Equal(t, int64(5), v)

	// Constants have a value without a model.
	got, err := bv.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	assert.False(t, sat(t, s, bv.Gt(5)))
	assert.True(t, sat(t, s, bv.Geq(5), bv.Leq(5), bv.Eq(5)))
	assert.False(t, sat(t, s, bv.Lt(5)))
}

func TestBitVector_Comparisons(t *testing.T) {
	s := solver.New()
	bv, err := s.NewBitVector(3)
	require.NoError(t, err)
	_, ok := bv.Const()
	require.False(t, ok)

	_, err = bv.Value()
	require.ErrorIs(t, err, solver.ErrNoModel)

	// Literals built after a model read false, so build them up front.
	type cmps struct{ eq, geq, leq, gt, lt z.Lit }
	all := make([]cmps, bv.Max()+1)
	for k := range all {
		n := int64(k)
		all[k] = cmps{bv.Eq(n), bv.Geq(n), bv.Leq(n), bv.Gt(n), bv.Lt(n)}
	}
	for k, c := range all {
		require.True(t, sat(t, s, c.eq), "eq %d", k)
		v, err := bv.Value()
		require.NoError(t, err)
		require.Equal(t, int64(k), v)

		require.True(t, s.Value(c.geq))
		require.True(t, s.Value(c.leq))
		require.False(t, s.Value(c.gt))
		require.False(t, s.Value(c.lt))
	}

	for _, tc := range []struct {
		name string
		m    func() bool
		want bool
	}{
		{"gt below range", func() bool { return sat(t, s, bv.Gt(-1).Not()) }, false},
		{"gt max", func() bool { return sat(t, s, bv.Gt(bv.Max())) }, false},
		{"geq zero", func() bool { return sat(t, s, bv.Geq(0).Not()) }, false},
		{"eq out of range", func() bool { return sat(t, s, bv.Eq(8)) }, false},
		{"eq negative", func() bool { return sat(t, s, bv.Eq(-3)) }, false},
		{"window", func() bool { return sat(t, s, bv.Gt(2), bv.Lt(4)) }, true},
		{"empty window", func() bool { return sat(t, s, bv.Gt(3), bv.Lt(4)) }, false},
	} {
		assert.Equal(t, tc.want, tc.m(), tc.name)
	}

	require.True(t, sat(t, s, bv.Gt(2), bv.Lt(4)))
	v, _ := bv.Value()
	assert.Equal(t, int64(3), v)
}
