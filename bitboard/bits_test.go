package bitboard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flipgraph/gf2mm/bitboard"
)

func TestSetTestClear(t *testing.T) {
	b := bitboard.New(130) // spans three words
	require.True(t, b.IsZero())

	b.Set(0)
	b.Set(64)
	b.Set(129)
	require.True(t, b.Test(0))
	require.True(t, b.Test(64))
	require.True(t, b.Test(129))
	require.False(t, b.Test(1))
	require.Equal(t, 3, b.PopCount())

	b.Clear(64)
	require.False(t, b.Test(64))
	require.Equal(t, 2, b.PopCount())
}

func TestXorInPlaceCancels(t *testing.T) {
	a := bitboard.FromEntries(16, []int{1, 2, 3})
	c := bitboard.FromEntries(16, []int{3, 4})
	a.XorInPlace(c)
	require.ElementsMatch(t, []int{1, 2, 4}, a.Entries())

	a.XorInPlace(c)
	require.ElementsMatch(t, []int{1, 2, 3}, a.Entries())
}

func TestXorSelfIsZero(t *testing.T) {
	a := bitboard.FromEntries(64, []int{5, 6, 7})
	z := a.Xor(a)
	require.True(t, z.IsZero())
}

func TestCloneIsIndependent(t *testing.T) {
	a := bitboard.FromBit(8, 3)
	c := a.Clone()
	c.Set(0)
	require.False(t, a.Test(0))
	require.True(t, c.Test(0))
}

func TestEqual(t *testing.T) {
	a := bitboard.FromEntries(32, []int{1, 9, 17})
	b := bitboard.FromEntries(32, []int{17, 1, 9})
	require.True(t, a.Equal(b))
	b.Clear(9)
	require.False(t, a.Equal(b))
}

func TestKeyStableAcrossEqualValues(t *testing.T) {
	a := bitboard.FromEntries(96, []int{2, 70})
	b := bitboard.FromEntries(96, []int{70, 2})
	require.Equal(t, a.Key(), b.Key())

	b.Clear(2)
	require.NotEqual(t, a.Key(), b.Key())
}

func TestEntriesSorted(t *testing.T) {
	a := bitboard.FromEntries(70, []int{65, 1, 3, 64})
	require.Equal(t, []int{1, 3, 64, 65}, a.Entries())
}

func TestNewCheckedRejectsNegative(t *testing.T) {
	_, err := bitboard.NewChecked(-1)
	require.ErrorIs(t, err, bitboard.ErrNegativeWidth)
}

func TestClearAll(t *testing.T) {
	a := bitboard.FromEntries(64, []int{1, 2, 3})
	a.ClearAll()
	require.True(t, a.IsZero())
}
