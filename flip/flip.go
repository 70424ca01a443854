// Package flip implements the Flip engine (spec §4.D): selecting an
// eligible pair of terms from different orbits, mutating the two
// aliased slots the pair shares, and collapsing whichever terms zero
// out as a result.
package flip

import (
	"math/rand"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/core"
)

// SizeCap bounds the size of a term a flip is allowed to produce. Zero
// means no cap; a positive value caps the volume popcount(d)*popcount(e)
// *popcount(f) of either mutated term; a negative value caps the
// popcount of either newly written slot alone (spec §4.D).
type SizeCap int

// NoCap disables size-capped retry.
const NoCap SizeCap = 0

// capRetryLimit is the "retries up to 1000 times" bound spec §4.D names
// for a size-capped flip selection.
const capRetryLimit = 1000

// Status reports why Select returned the candidate it did, matching the
// termination-relevant outcomes spec §4.D and §7 describe.
type Status int

const (
	// StatusOK means p, q are a valid, cap-satisfying candidate pair.
	StatusOK Status = iota
	// StatusNoProgress means twoplus is empty: no flip is possible at
	// all (spec §7's no-progress state, termination code -1).
	StatusNoProgress
	// StatusCapExhausted means 1000 consecutive candidates failed the
	// size cap or orbit constraint (spec §7's size-cap deadlock,
	// termination code 6).
	StatusCapExhausted
)

// sameOrbit reports whether term indices p and q belong to the same
// sigma-sized orbit (spec §4.D: "reject if ⌊P/σ⌋ = ⌊Q/σ⌋").
func sameOrbit(p, q, sigma int) bool { return p/sigma == q/sigma }

// mutation computes the candidate new e-value for p and new f-value for
// q, without writing them anywhere (spec §4.D's e_P'/f_Q' formulas).
func mutation(st *core.State, p, q int) (newE, newF bitboard.Bits) {
	newE = st.D(st.ME(p)).Xor(st.D(st.ME(q)))
	newF = st.D(st.MF(p)).Xor(st.D(st.MF(q)))
	return newE, newF
}

func capSatisfied(st *core.State, cap SizeCap, p, q int, newE, newF bitboard.Bits) bool {
	if cap == NoCap {
		return true
	}
	if cap > 0 {
		pVol := st.D(p).PopCount() * newE.PopCount() * st.F(p).PopCount()
		qVol := st.D(q).PopCount() * st.E(q).PopCount() * newF.PopCount()
		return pVol <= int(cap) && qVol <= int(cap)
	}
	limit := int(-cap)
	return newE.PopCount() <= limit && newF.PopCount() <= limit
}

// Select samples an eligible (p, q) pair per spec §4.D: a value v drawn
// uniformly from twoplus, an ordered pair drawn uniformly from v's
// holder positions, rejecting same-orbit pairs and (when cap is set)
// pairs whose resulting mutation would exceed the cap.
func Select(st *core.State, rng *rand.Rand, cap SizeCap) (p, q int, status Status) {
	if st.Index.TwoplusLen() == 0 {
		return 0, 0, StatusNoProgress
	}

	limit := capRetryLimit
	if cap == NoCap {
		limit = -1 // unbounded: spec only names the 1000 retry bound for size caps
	}

	for attempt := 0; limit < 0 || attempt < limit; attempt++ {
		v, ok := st.Index.SampleValue(rng)
		if !ok {
			return 0, 0, StatusNoProgress
		}
		cand1, cand2, ok := st.Index.SamplePair(rng, v)
		if !ok {
			continue
		}
		if sameOrbit(cand1, cand2, st.Sigma) {
			continue
		}
		newE, newF := mutation(st, cand1, cand2)
		if !capSatisfied(st, cap, cand1, cand2, newE, newF) {
			continue
		}
		return cand1, cand2, StatusOK
	}
	return 0, 0, StatusCapExhausted
}

// Collapse reports which orbit-halves a flip zeroed, for the caller to
// feed into the infinite-loop guard and rank accounting.
type Collapse struct {
	P, Q bool // whether p's / q's local 3-group collapsed
}

// Apply performs the flip on term indices p, q: writes the mutated e/f
// slots, then zero-collapses either side whose new value came out zero,
// including the σ=6 bonus collapse (spec §4.D, §9 open question).
// flips increments by Sigma, matching spec §4.F's per-step accounting.
func Apply(st *core.State, p, q int) Collapse {
	meP, mfP := st.ME(p), st.MF(p)
	meQ, mfQ := st.ME(q), st.MF(q)

	newE, newF := mutation(st, p, q)

	oldFP := st.F(p) // unchanged by this flip; needed for the bonus-collapse compare
	oldEQ := st.E(q) // unchanged by this flip

	st.SetD(meP, newE)
	st.SetD(mfQ, newF)

	var c Collapse

	if st.Sigma == 6 {
		pp, qq := st.Reflected(p), st.Reflected(q)
		mePP, mfPP := st.ME(pp), st.MF(pp)
		meQQ, mfQQ := st.ME(qq), st.MF(qq)

		newEPP, newFQQ := mutation(st, pp, qq)
		oldFPP := st.F(pp)
		oldEQQ := st.E(qq)

		st.SetD(mePP, newEPP)
		st.SetD(mfQQ, newFQQ)

		bonusP := st.D(p).Equal(st.D(pp)) && newE.Equal(newEPP) && oldFP.Equal(oldFPP)
		if newE.IsZero() || bonusP {
			collapseGroup(st, p, meP, mfP)
			collapseGroup(st, pp, mePP, mfPP)
			c.P = true
		}

		bonusQ := st.D(q).Equal(st.D(qq)) && oldEQ.Equal(oldEQQ) && newF.Equal(newFQQ)
		if newF.IsZero() || bonusQ {
			collapseGroup(st, q, meQ, mfQ)
			collapseGroup(st, qq, meQQ, mfQQ)
			c.Q = true
		}

		st.Flips += 6
		return c
	}

	if newE.IsZero() {
		collapseGroup(st, p, meP, mfP)
		c.P = true
	}
	if newF.IsZero() {
		collapseGroup(st, q, meQ, mfQ)
		c.Q = true
	}

	st.Flips += 3
	return c
}

// collapseGroup zeros the three term-index positions of a local
// 3-group: the term's own D, and the two physical slots its e-partner
// and f-partner alias (spec §4.D: "set muls[P] = muls[mf(P)] = 0").
func collapseGroup(st *core.State, base, me, mf int) {
	st.Zero(base)
	st.Zero(me)
	st.Zero(mf)
}

// NeedsPlus implements the infinite-loop guard (spec §4.D): true iff
// every value still in twoplus has all its holders within a single
// orbit, meaning no legal (different-orbit) flip remains.
func NeedsPlus(st *core.State) bool {
	for _, v := range st.Index.TwoplusValues() {
		positions := st.Index.Positions(v)
		orbit0 := positions[0] / st.Sigma
		allSame := true
		for _, p := range positions[1:] {
			if p/st.Sigma != orbit0 {
				allSame = false
				break
			}
		}
		if !allSame {
			return false
		}
	}
	return true
}
