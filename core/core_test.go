package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/core"
	"github.com/flipgraph/gf2mm/orbit"
	"github.com/flipgraph/gf2mm/tensor"
)

func buildDiagState(t *testing.T, kind tensor.Kind, n, sigma int) *core.State {
	t.Helper()
	lay := tensor.NewLayout(kind, n)
	target := tensor.Target(lay)

	muls, err := orbit.BuildSymmetric(target, lay.S, sigma)
	require.NoError(t, err)

	st, err := core.NewState(muls, sigma, lay.S, target)
	require.NoError(t, err)
	return st
}

func TestNewStateRankMatchesNonzeroTermCount(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	want := 0
	for i := 0; i < st.N(); i++ {
		if !st.Term(i).IsZero() {
			want++
		}
	}
	require.Equal(t, want, st.Rank)
	require.Equal(t, st.Rank, st.BestRank)
}

func TestSetDUpdatesIndexAndRank(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	before := st.Rank
	i := 0

	// Zeroing term i's own D, its e-partner's D, and its f-partner's D
	// zeroes the whole local 3-group, dropping rank by exactly 3.
	d := st.D(i)
	st.Zero(i)
	st.Zero(st.ME(i))
	st.Zero(st.MF(i))
	require.Equal(t, before-3, st.Rank)
	require.Nil(t, st.Index.Positions(d))
}

func TestZeroClearsTermEntirely(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	st.Zero(0)
	st.Zero(st.ME(0))
	st.Zero(st.MF(0))
	require.True(t, st.Term(0).IsZero())
}

func TestSnapshotOnlyOnStrictImprovement(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	st.BestRank = st.Rank + 1 // pretend best is currently worse
	st.Snapshot()
	require.Equal(t, st.Rank, st.BestRank)

	recorded := st.BestRank
	st.Snapshot() // no strict improvement now
	require.Equal(t, recorded, st.BestRank)
}

func TestResultTermsPrefersBestWhenStrictlyBetter(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	st.Best = core.CloneRaw(st.Raw)
	st.BestRank = st.Rank - 1
	got := st.ResultTerms()
	require.Len(t, got, st.N())
}

func TestCloneIsIndependent(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	clone := st.Clone()
	clone.SetD(0, bitboard.New(st.S))
	require.NotEqual(t, st.D(0).Entries(), clone.D(0).Entries())
}

func TestAssertInvariantsPassesForFreshBuild(t *testing.T) {
	for _, sigma := range []int{3, 6} {
		st := buildDiagState(t, tensor.Normal, 2, sigma)
		require.NotPanics(t, func() { st.AssertInvariants() })
	}
}

func TestAssertInvariantsPanicsOnTensorBreach(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	st.Raw[0] = bitboard.FromBit(st.S, st.S-1)
	require.Panics(t, func() { st.AssertInvariants() })
}

func TestNewStateRejectsBadSigma(t *testing.T) {
	lay := tensor.NewLayout(tensor.Normal, 2)
	target := tensor.Target(lay)
	_, err := core.NewState(nil, 4, lay.S, target)
	require.ErrorIs(t, err, core.ErrBadSigma)
}

func TestMEMFAreMutualInversesWithinLocalGroup(t *testing.T) {
	for _, sigma := range []int{3, 6} {
		st := buildDiagState(t, tensor.Normal, 2, sigma)
		for i := 0; i < st.N(); i++ {
			require.Equal(t, i, st.MF(st.ME(i)))
			require.Equal(t, i, st.ME(st.MF(i)))
		}
	}
}

func TestEAndFAreAliasesOfPartnerD(t *testing.T) {
	st := buildDiagState(t, tensor.Normal, 2, 3)
	for i := 0; i < st.N(); i++ {
		require.True(t, st.E(i).Equal(st.D(st.ME(i))))
		require.True(t, st.F(i).Equal(st.D(st.MF(i))))
	}
}
