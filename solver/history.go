package solver

import (
	"gonum.org/v1/gonum/stat"

	"github.com/flipgraph/gf2mm/core"
)

// Sample is one (flips, rank) observation recorded during a run.
type Sample struct {
	Flips int
	Rank  int
}

// History accumulates Samples for a single Run call, the Go analogue of
// the original's per-run rank-evolution tally.
type History struct {
	Samples []Sample
}

func newHistory() *History { return &History{} }

func (h *History) record(flips, rank int) {
	h.Samples = append(h.Samples, Sample{Flips: flips, Rank: rank})
}

// FinalRanks extracts the terminal rank of each run in a batch, in run
// order, as a plain []float64 for gonum/stat consumption.
func FinalRanks(results []Result) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = float64(r.Rank)
	}
	return out
}

// Batch summarizes repeated Run calls sharing a configuration but
// independent seeds, the non-CLI analogue of the original's aggregate
// rank tally across solves.
type Batch struct {
	Results []Result
	Mean    float64
	StdDev  float64
}

// RunBatch runs Run n times against independent clones of st0 (so each
// run starts from the same seed state but mutates its own copy), each
// with a distinct seed derived from cfg.Seed, and summarizes the
// terminal ranks with gonum/stat.
func RunBatch(st0 *core.State, cfg Config, n int) Batch {
	results := make([]Result, n)
	for i := 0; i < n; i++ {
		runCfg := cfg
		runCfg.Seed = cfg.Seed + int64(i)
		results[i] = Run(st0.Clone(), runCfg)
	}
	ranks := FinalRanks(results)
	mean := stat.Mean(ranks, nil)
	std := stat.StdDev(ranks, nil)
	return Batch{Results: results, Mean: mean, StdDev: std}
}
