// Package plus implements the Plus-transition engine (spec §4.E): an
// identity rewrite that adds one new orbit to escape a flip-graph local
// minimum, plus the spacing schedule that decides when to fire one.
package plus

import (
	"math/rand"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/core"
	"github.com/flipgraph/gf2mm/flip"
)

// maxAttempts bounds the plus candidate search; spec names no explicit
// retry cap for plus (unlike flip's 1000), so this is a defensive
// backstop against a pathological state with no eligible pair at all.
const maxAttempts = 100000

// half holds the three new coordinate values a plus transition writes
// for one orbit-half (σ=3 case, or one reflected half of a σ=6 case).
type half struct {
	p, q, r       int
	newPE, newQF  bitboard.Bits
	newRD         bitboard.Bits
	oldQE, oldQF  bitboard.Bits
}

func capSatisfied(st *core.State, cap flip.SizeCap, h half) bool {
	if cap == flip.NoCap {
		return true
	}
	if cap > 0 {
		pVol := st.D(h.p).PopCount() * h.newPE.PopCount() * st.F(h.p).PopCount()
		qVol := st.D(h.p).PopCount() * st.E(h.q).PopCount() * h.newQF.PopCount()
		rVol := h.newRD.PopCount() * h.oldQE.PopCount() * h.oldQF.PopCount()
		return pVol <= int(cap) && qVol <= int(cap) && rVol <= int(cap)
	}
	limit := int(-cap)
	return h.newPE.PopCount() <= limit && h.newQF.PopCount() <= limit && h.newRD.PopCount() <= limit
}

// planHalf validates and computes the new values for one σ=3-shaped
// orbit-half, per spec §4.E's P/Q/R construction. ok is false if p, q
// don't qualify (same orbit, a zero factor, or a non-pairwise-distinct
// triple).
func planHalf(st *core.State, p, q, r int) (h half, ok bool) {
	if p/st.Sigma == q/st.Sigma {
		return half{}, false
	}
	mpd, mpe, mpf := st.D(p), st.E(p), st.F(p)
	mqd, mqe, mqf := st.D(q), st.E(q), st.F(q)
	if mpd.IsZero() || mqd.IsZero() {
		return half{}, false
	}
	if mpd.Equal(mqd) || mpe.Equal(mqe) || mpf.Equal(mqf) {
		return half{}, false
	}
	h = half{
		p: p, q: q, r: r,
		newPE: mpe.Xor(mqe),
		newQF: mpf.Xor(mqf),
		newRD: mpd.Xor(mqd),
		oldQE: mqe,
		oldQF: mqf,
	}
	return h, true
}

// commitHalf writes a validated half's new coordinates, per spec §4.E:
//
//	P: (d_P,         e_P xor e_Q, f_P)
//	Q: (d_P,         e_Q,          f_P xor f_Q)
//	R: (d_P xor d_Q, e_Q,          f_Q)
func commitHalf(st *core.State, h half) {
	dP := st.D(h.p)
	st.SetD(st.ME(h.p), h.newPE)
	st.SetD(h.q, dP)
	st.SetD(st.MF(h.q), h.newQF)
	st.SetD(h.r, h.newRD)
	st.SetD(st.ME(h.r), h.oldQE)
	st.SetD(st.MF(h.r), h.oldQF)
}

// Apply attempts a plus transition: it samples random term-index pairs
// until it finds one satisfying spec §4.E's conditions (and, for σ=6,
// whose reflected pair also qualifies), then commits both halves
// atomically. Returns false if no reserved zero slot exists or no
// eligible pair is found within maxAttempts.
func Apply(st *core.State, rng *rand.Rand, cap flip.SizeCap) bool {
	r, ok := findZero(st)
	if !ok {
		return false
	}
	n := st.N()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		p := rng.Intn(n)
		q := rng.Intn(n)

		h, ok := planHalf(st, p, q, r)
		if !ok || !capSatisfied(st, cap, h) {
			continue
		}

		if st.Sigma == 3 {
			commitHalf(st, h)
			st.Plus += 3
			return true
		}

		pp, qq, rr := st.Reflected(p), st.Reflected(q), st.Reflected(r)
		hh, ok := planHalf(st, pp, qq, rr)
		if !ok || !capSatisfied(st, cap, hh) {
			continue
		}

		commitHalf(st, h)
		commitHalf(st, hh)
		st.Plus += 6
		return true
	}
	return false
}

// findZero returns the lowest term index whose own D coordinate is
// zero, the reserved headroom slot spec §4.E's R names.
func findZero(st *core.State) (int, bool) {
	for i := 0; i < st.N(); i++ {
		if st.D(i).IsZero() {
			return i, true
		}
	}
	return 0, false
}

// Spacing selects how the next plus-eligible flip count is chosen once
// the current one fires (spec §4.E's plus_after schedule).
type Spacing int

const (
	// Uniform schedules the next plus exactly F flips later.
	Uniform Spacing = iota
	// Random schedules the next plus uniform(0, 2F) flips later.
	Random
)

// Schedule tracks when the next plus transition is due. It is purely a
// function of flip count and spacing mode: the separate "is a plus
// allowed at all right now" question (spec §4.E's plus_limit cap on
// live rank) is the caller's to ask fresh every time against the
// current State.Rank, since that cap must re-enable the moment a
// collapse drops rank back below it — a property a Schedule field
// cached at fire time cannot express.
type Schedule struct {
	Spacing Spacing
	After   int // F
	NextAt  int
}

// NewSchedule returns a Schedule with its first NextAt already computed
// from flips=0.
func NewSchedule(spacing Spacing, after int, rng *rand.Rand) Schedule {
	s := Schedule{Spacing: spacing, After: after}
	s.Advance(0, rng)
	return s
}

// Due reports whether a plus transition should fire at the given flip
// count.
func (s Schedule) Due(flips int) bool { return flips >= s.NextAt }

// Advance recomputes NextAt after a plus fires (or after construction).
func (s *Schedule) Advance(flips int, rng *rand.Rand) {
	switch s.Spacing {
	case Random:
		s.NextAt = flips + rng.Intn(2*s.After+1)
	default:
		s.NextAt = flips + s.After
	}
}
