package randutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()

	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeedKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 5)
	assert.Equal(t, int64(9), Seed(9, now))
	assert.Equal(t, now.UnixNano(), Seed(0, now))
}

func TestChoiceFollowsWeights(t *testing.T) {
	t.Parallel()

	rng := New(3)
	counts := make([]int, 3)
	const draws = 10000
	for range draws {
		counts[Choice(rng, []float64{0.2, 0, 0.8})]++
	}
	assert.Zero(t, counts[1], "zero weight must never be drawn")
	assert.InDelta(t, 0.2*draws, counts[0], 250)
	assert.InDelta(t, 0.8*draws, counts[2], 250)
}

func TestChoiceUniformWhenDegenerate(t *testing.T) {
	t.Parallel()

	rng := New(5)
	seen := map[int]bool{}
	for range 200 {
		seen[Choice(rng, []float64{0, 0, 0, 0})] = true
	}
	assert.Len(t, seen, 4)
}
