package plus_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flipgraph/gf2mm/core"
	"github.com/flipgraph/gf2mm/flip"
	"github.com/flipgraph/gf2mm/orbit"
	"github.com/flipgraph/gf2mm/plus"
	"github.com/flipgraph/gf2mm/tensor"
)

func buildState(t *testing.T, n, sigma int) *core.State {
	t.Helper()
	lay := tensor.NewLayout(tensor.Normal, n)
	target := tensor.Target(lay)
	muls, err := orbit.BuildSymmetric(target, lay.S, sigma)
	require.NoError(t, err)
	st, err := core.NewState(muls, sigma, lay.S, target)
	require.NoError(t, err)
	return st
}

// withHeadroom zeros out one full orbit's worth of terms at the tail of
// the term array, mirroring the reserved-slot headroom seed.Assemble is
// responsible for in the full pipeline.
func withHeadroom(st *core.State, sigma int) {
	n := st.N()
	for i := n - sigma; i < n; i++ {
		st.Zero(i)
	}
}

func TestApplyIncreasesRankBySigmaAndPreservesTensor(t *testing.T) {
	for _, sigma := range []int{3, 6} {
		st := buildState(t, 3, sigma)
		withHeadroom(st, sigma)
		before := st.Rank

		rng := rand.New(rand.NewSource(7))
		ok := plus.Apply(st, rng, flip.NoCap)
		require.True(t, ok, "expected a plus transition to be found")
		require.Equal(t, before+sigma, st.Rank)
		require.NotPanics(t, func() { st.AssertInvariants() })
	}
}

func TestApplyFailsWithoutReservedZeroSlot(t *testing.T) {
	st := buildState(t, 3, 3) // fully dense: no zero term anywhere
	rng := rand.New(rand.NewSource(1))
	ok := plus.Apply(st, rng, flip.NoCap)
	require.False(t, ok)
}

func TestApplyRaisesRankByThreeOnSmallCyclicSet(t *testing.T) {
	// The N=2 cyclic decomposition has four 3-orbits; zeroing the last one
	// as headroom leaves three nonzero orbits to draw p and q from.
	st := buildState(t, 2, 3)
	withHeadroom(st, 3)

	rng := rand.New(rand.NewSource(42))
	before := st.Rank
	ok := plus.Apply(st, rng, flip.NoCap)
	require.True(t, ok)
	require.Equal(t, before+3, st.Rank)
}

func TestScheduleUniformSpacing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := plus.NewSchedule(plus.Uniform, 10, rng)
	require.Equal(t, 10, s.NextAt)
	require.False(t, s.Due(9))
	require.True(t, s.Due(10))

	s.Advance(10, rng)
	require.Equal(t, 20, s.NextAt)
}

func TestScheduleRandomSpacingWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s := plus.NewSchedule(plus.Random, 10, rng)
	for i := 0; i < 50; i++ {
		s.Advance(0, rng)
		require.GreaterOrEqual(t, s.NextAt, 0)
		require.LessOrEqual(t, s.NextAt, 20)
	}
}
