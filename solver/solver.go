// Package solver implements the Controller (spec §4.F): termination
// policy, the flip/plus driving loop, best-state snapshotting, and
// optional run-history statistics.
package solver

import (
	"math/rand"

	"github.com/flipgraph/gf2mm/core"
	"github.com/flipgraph/gf2mm/flip"
	"github.com/flipgraph/gf2mm/plus"
	"github.com/flipgraph/gf2mm/term"
)

// Code is a termination code, matching spec §4.F's exit/return codes.
type Code int

const (
	CodeTargetReached Code = 0
	CodeNoProgress    Code = -1
	CodeFlipLimit     Code = 1
	CodeEarlyStop     Code = 2
	CodeSizeCapEscape Code = 6
	CodeNoResult      Code = 9
)

// Result is what Run reports at termination.
type Result struct {
	Code     Code
	Terms    []term.Term
	Flips    int
	Plus     int
	Rank     int
	BestRank int
	History  *History
}

func finish(st *core.State, code Code, hist *History) Result {
	return Result{
		Code:     code,
		Terms:    st.ResultTerms(),
		Flips:    st.Flips,
		Plus:     st.Plus,
		Rank:     st.Rank,
		BestRank: st.BestRank,
		History:  hist,
	}
}

// Run drives the flip/plus loop against st until a termination
// condition fires (spec §4.F), mutating st in place.
func Run(st *core.State, cfg Config) Result {
	rng := rand.New(rand.NewSource(cfg.Seed))
	deadline := cfg.FlipLimit
	sched := plus.NewSchedule(cfg.PlusSpacing, cfg.PlusAfter, rng)

	var hist *History
	lastSample := 0
	if cfg.SampleEvery > 0 {
		hist = newHistory()
	}

	for {
		if st.Rank <= cfg.TargetRank {
			st.Snapshot()
			return finish(st, CodeTargetReached, hist)
		}
		if st.Flips >= deadline {
			st.Snapshot()
			code := CodeFlipLimit
			if isBudgetReallocating(cfg.Strategy) {
				code = CodeEarlyStop
			}
			return finish(st, code, hist)
		}

		// plus_limit gates on the live rank, rechecked every iteration, so
		// it re-enables the instant a collapse drops rank back below it
		// (spec §4.E) rather than latching shut on a monotonic counter.
		needsPlus := flip.NeedsPlus(st)
		if (needsPlus || sched.Due(st.Flips)) && st.Rank < cfg.PlusLimit {
			if plus.Apply(st, rng, cfg.SizeCap) {
				sched.Advance(st.Flips, rng)
				if cfg.Debug {
					st.AssertInvariants()
				}
				continue
			}
			if needsPlus {
				return finish(st, CodeNoProgress, hist)
			}
			// A scheduled (non-forced) plus found no eligible candidate.
			// Advance the schedule so it does not re-fire every
			// iteration, then fall through to a flip attempt this same
			// iteration — the loop must always make progress or return.
			sched.Advance(st.Flips, rng)
		} else if needsPlus {
			// No cross-orbit flip pair exists and a plus is either
			// unavailable or disallowed by plus_limit: genuinely stuck.
			return finish(st, CodeNoProgress, hist)
		}

		p, q, status := flip.Select(st, rng, cfg.SizeCap)
		switch status {
		case flip.StatusNoProgress:
			return finish(st, CodeNoProgress, hist)
		case flip.StatusCapExhausted:
			return finish(st, CodeSizeCapEscape, hist)
		}
		flip.Apply(st, p, q)

		beforeBest := st.BestRank
		st.Snapshot()
		if st.BestRank < beforeBest {
			deadline = cfg.Strategy.OnRecord(st.Flips, st.Rank, cfg.TargetRank, st.Sigma, cfg.FlipLimit)
		}

		if cfg.Debug {
			st.AssertInvariants()
		}
		if hist != nil && st.Flips-lastSample >= cfg.SampleEvery {
			hist.record(st.Flips, st.Rank)
			lastSample = st.Flips
		}
	}
}
