package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSchemeOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "7", newBuilderConfig().idFn(7))
	assert.Equal(t, "AB", newBuilderConfig(WithExcelColumnIDs()).idFn(27))
	assert.Equal(t, "v3", newBuilderConfig(WithExcelColumnIDs(), WithPrefixIDs("v")).idFn(3), "last option wins")
	assert.Equal(t, "5", newBuilderConfig(WithIDScheme(nil)).idFn(5), "nil scheme is ignored")
}

func TestRNGOptions(t *testing.T) {
	t.Parallel()

	require.Nil(t, newBuilderConfig().rng)

	a := newBuilderConfig(WithSeed(99)).rng
	b := newBuilderConfig(WithSeed(99)).rng
	require.NotNil(t, a)
	assert.Equal(t, a.Int63(), b.Int63())

	r := rand.New(rand.NewSource(1))
	assert.Same(t, r, newBuilderConfig(WithRand(r)).rng)
	assert.Panics(t, func() { WithRand(nil) })
}

func TestWeightAndDirectionOptions(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	assert.Equal(t, DefaultEdgeWeight, cfg.weightFn(nil))
	assert.False(t, cfg.bothWays)

	cfg = newBuilderConfig(WithConstantWeight(4), WithBothDirections())
	assert.Equal(t, int64(4), cfg.weightFn(nil))
	assert.True(t, cfg.bothWays)

	assert.Panics(t, func() { WithWeightFn(nil) })
}
