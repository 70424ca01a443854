package seed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flipgraph/gf2mm/seed"
	"github.com/flipgraph/gf2mm/tensor"
)

func TestCubesParsesDiagonalString(t *testing.T) {
	cubes, err := seed.Cubes([]string{"11"}, 2)
	require.NoError(t, err)
	require.Len(t, cubes, 1)
	require.True(t, cubes[0].D.Equal(cubes[0].E))
	require.True(t, cubes[0].D.Equal(cubes[0].F))
	require.Equal(t, 2, cubes[0].D.PopCount()) // bits at (0,0) and (1,1)
}

func TestCubesRejectsWrongLength(t *testing.T) {
	_, err := seed.Cubes([]string{"1"}, 2)
	require.ErrorIs(t, err, seed.ErrBadCubeLength)
}

func TestFullCubesParsesFullPattern(t *testing.T) {
	cubes, err := seed.FullCubes([]string{"1000"}, 2)
	require.NoError(t, err)
	require.Len(t, cubes, 1)
	require.Equal(t, 1, cubes[0].D.PopCount())
}

func TestAssembleProducesSigmaAlignedResidualState(t *testing.T) {
	cubes, err := seed.Cubes([]string{"11"}, 2)
	require.NoError(t, err)

	for _, sigma := range []int{3, 6} {
		asm, err := seed.Assemble(cubes, 2, sigma, 1000, 7)
		require.NoError(t, err)
		require.Equal(t, 0, asm.State.N()%sigma)
		require.Equal(t, 6, asm.ResidualTarget) // 7 - len(cubes)=1
		require.NotPanics(t, func() { asm.State.AssertInvariants() })
	}
}

func TestAssembleReservesHeadroomAsZeroTerms(t *testing.T) {
	cubes, err := seed.Cubes([]string{"11"}, 2)
	require.NoError(t, err)

	asm, err := seed.Assemble(cubes, 2, 3, 1000, 7)
	require.NoError(t, err)
	require.Greater(t, asm.PlusBudget, 0)

	zeroCount := 0
	for i := 0; i < asm.State.N(); i++ {
		if asm.State.Term(i).IsZero() {
			zeroCount++
		}
	}
	require.Equal(t, asm.PlusBudget, zeroCount)
}

func TestAssembleWithNoCubesRepresentsFullTarget(t *testing.T) {
	asm, err := seed.Assemble(nil, 2, 3, 100, 7)
	require.NoError(t, err)

	lay := tensor.NewLayout(tensor.Normal, 2)
	target := tensor.Target(lay)
	require.True(t, asm.State.Target.Equal(target))
}
