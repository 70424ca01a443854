package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flipgraph/gf2mm/core"
	"github.com/flipgraph/gf2mm/orbit"
	"github.com/flipgraph/gf2mm/solver"
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

func TestRunReportsTargetReachedWhenStartingAtTarget(t *testing.T) {
	for _, sigma := range []int{3, 6} {
		st := buildState(t, 2, sigma)
		startRank := st.Rank

		cfg, err := solver.NewConfig(startRank, 2000, sigma, solver.WithSeed(1))
		require.NoError(t, err)

		res := solver.Run(st, cfg)
		require.Equal(t, solver.CodeTargetReached, res.Code)
		require.LessOrEqual(t, res.Rank, startRank)
		require.Len(t, res.Terms, st.N())
	}
}

func TestRunStopsAtFlipLimitWhenTargetUnreachable(t *testing.T) {
	st := buildState(t, 2, 3)
	// An impossible target forces exhaustion of the flip budget.
	cfg, err := solver.NewConfig(0, 50, 3, solver.WithSeed(2))
	require.NoError(t, err)

	res := solver.Run(st, cfg)
	require.Contains(t, []solver.Code{solver.CodeFlipLimit, solver.CodeNoProgress, solver.CodeTargetReached}, res.Code)
}

func TestRunWithEarlyStrategyReportsCodeTwoOnBudgetExhaustion(t *testing.T) {
	st := buildState(t, 2, 3)
	cfg, err := solver.NewConfig(0, 50, 3, solver.WithSeed(3), solver.WithStrategy(solver.Early{}))
	require.NoError(t, err)

	res := solver.Run(st, cfg)
	if res.Code == solver.CodeFlipLimit {
		t.Fatalf("Early strategy exhaustion must report CodeEarlyStop, not CodeFlipLimit")
	}
}

func TestRunRecordsHistoryWhenEnabled(t *testing.T) {
	st := buildState(t, 2, 3)
	cfg, err := solver.NewConfig(0, 300, 3, solver.WithSeed(4), solver.WithHistory(10))
	require.NoError(t, err)

	res := solver.Run(st, cfg)
	require.NotNil(t, res.History)
}

func TestRunDebugModeNeverPanicsOnValidState(t *testing.T) {
	st := buildState(t, 2, 3)
	cfg, err := solver.NewConfig(0, 300, 3, solver.WithSeed(5), solver.WithDebug())
	require.NoError(t, err)

	require.NotPanics(t, func() { solver.Run(st, cfg) })
}

func TestNewConfigRejectsBadInput(t *testing.T) {
	_, err := solver.NewConfig(0, 0, 3)
	require.ErrorIs(t, err, solver.ErrBadConfig)

	_, err = solver.NewConfig(-1, 10, 3)
	require.ErrorIs(t, err, solver.ErrBadConfig)
}

func TestRunBatchComputesMeanAndStdDev(t *testing.T) {
	st := buildState(t, 2, 3)
	cfg, err := solver.NewConfig(0, 300, 3, solver.WithSeed(6))
	require.NoError(t, err)

	batch := solver.RunBatch(st, cfg, 3)
	require.Len(t, batch.Results, 3)
	require.GreaterOrEqual(t, batch.Mean, 0.0)
}
