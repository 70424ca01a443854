// Package core holds the flip-graph State: the live term array, its
// muldex index, rank bookkeeping, and the best-known snapshot. It is the
// data model spec §3 describes.
//
// Storage is the compact aliased scheme the original solver uses rather
// than three independently-held fields per term: only one bitboard.Bits
// is physically stored per term index (Raw[i], playing the role of
// term i's own "d" coordinate); a term's e and f coordinates are never
// duplicated, they are always read through the orbit wiring as
// Raw[me(i)] and Raw[mf(i)]. Since me and mf are mutual inverses within
// a term's local 3-group (orbit.partnerOffsets), changing Raw[i]
// transparently updates exactly the three terms {i, me(i), mf(i)} that
// alias it — there is no separate synchronization step, which is what
// makes the flip mutation in package flip a pure "XOR two old values,
// write the result to one slot" operation.
package core

import (
	"errors"
	"fmt"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/muldex"
	"github.com/flipgraph/gf2mm/orbit"
	"github.com/flipgraph/gf2mm/tensor"
	"github.com/flipgraph/gf2mm/term"
)

// ErrBadSigma is returned by NewState when sigma is neither 3 nor 6.
var ErrBadSigma = errors.New("core: symmetry degree must be 3 or 6")

// State is the live flip-graph state.
type State struct {
	S     int // slot width (N²)
	Sigma int

	meOffset, mfOffset []int // cached orbit.Partners(Sigma)

	Raw   []bitboard.Bits // Raw[i] is term i's own "d" coordinate
	Index *muldex.Index   // indexes Raw by term index

	Rank int // count of terms whose (d,e,f) are not all zero

	Best     []bitboard.Bits
	BestRank int

	Flips int
	Plus  int

	Target bitboard.Bits // the tensor this state must always represent (I1)
}

// NewState builds a State from an initial, I2-respecting term set (as
// produced by orbit.BuildSymmetric or seed.Assemble): only each term's D
// field is kept, since E and F are recoverable via the orbit wiring.
// muls's length must already be a multiple of sigma.
func NewState(muls []term.Term, sigma, s int, target bitboard.Bits) (*State, error) {
	if !orbit.Valid(sigma) {
		return nil, ErrBadSigma
	}
	meOffset, mfOffset, _ := orbit.Partners(sigma)

	raw := make([]bitboard.Bits, len(muls))
	for i, t := range muls {
		raw[i] = t.D.Clone()
	}

	st := &State{
		S:        s,
		Sigma:    sigma,
		meOffset: meOffset,
		mfOffset: mfOffset,
		Raw:      raw,
		Index:    muldex.New(),
		Target:   target,
	}
	for i, v := range raw {
		if !v.IsZero() {
			st.Index.Add(i, v)
		}
	}
	for i := range raw {
		if !st.Term(i).IsZero() {
			st.Rank++
		}
	}
	st.BestRank = st.Rank
	st.Best = CloneRaw(st.Raw)
	return st, nil
}

// N returns the term count N_M.
func (st *State) N() int { return len(st.Raw) }

// ME returns term i's e-partner term index.
func (st *State) ME(i int) int { return orbit.ME(i, st.Sigma, st.meOffset) }

// MF returns term i's f-partner term index.
func (st *State) MF(i int) int { return orbit.MF(i, st.Sigma, st.mfOffset) }

// D returns term i's own coordinate.
func (st *State) D(i int) bitboard.Bits { return st.Raw[i] }

// E returns term i's e coordinate, aliased from its e-partner's D.
func (st *State) E(i int) bitboard.Bits { return st.Raw[st.ME(i)] }

// F returns term i's f coordinate, aliased from its f-partner's D.
func (st *State) F(i int) bitboard.Bits { return st.Raw[st.MF(i)] }

// Term materializes term i's full (d,e,f) triple.
func (st *State) Term(i int) term.Term {
	return term.Term{D: st.D(i), E: st.E(i), F: st.F(i)}
}

// Reflected returns term i's reflected partner within a 6-orbit's two
// halves (i±3). Only meaningful for Sigma==6.
func (st *State) Reflected(i int) int {
	if i%6 < 3 {
		return i + 3
	}
	return i - 3
}

// SetD overwrites term position's own raw coordinate, updating the
// index and the rank of every term that aliases this position (itself,
// its e-partner-of, and its f-partner-of — exactly the three terms of
// its local 3-group, since me and mf are mutual inverses there).
func (st *State) SetD(pos int, v bitboard.Bits) {
	old := st.Raw[pos]
	if old.Equal(v) {
		return
	}

	affected := [3]int{pos, st.ME(pos), st.MF(pos)}
	var wasZero [3]bool
	for k, i := range affected {
		wasZero[k] = st.Term(i).IsZero()
	}

	if !old.IsZero() {
		st.Index.Remove(pos, old)
	}
	st.Raw[pos] = v
	if !v.IsZero() {
		st.Index.Add(pos, v)
	}

	for k, i := range affected {
		isZero := st.Term(i).IsZero()
		switch {
		case wasZero[k] && !isZero:
			st.Rank++
		case !wasZero[k] && isZero:
			st.Rank--
		}
	}
}

// Zero forces term position's own raw coordinate to zero unconditionally
// — used by the collapse and bonus-collapse branches of package flip,
// which must zero a slot even when its already-computed value happens
// to be nonzero (spec §9's open question).
func (st *State) Zero(pos int) { st.SetD(pos, bitboard.New(st.S)) }

// Snapshot copies the live coordinate array into Best iff Rank is a
// strict new minimum (spec §3 "Snapshot").
func (st *State) Snapshot() {
	if st.Rank < st.BestRank {
		st.BestRank = st.Rank
		st.Best = CloneRaw(st.Raw)
	}
}

// ResultTerms materializes the term set to report at termination: Best
// if strictly better than the live state, otherwise the live state
// (spec §3, §4.F).
func (st *State) ResultTerms() []term.Term {
	raw := st.Raw
	if st.BestRank < st.Rank {
		raw = st.Best
	}
	meOffset, mfOffset, _ := orbit.Partners(st.Sigma)
	out := make([]term.Term, len(raw))
	for i := range raw {
		out[i] = term.Term{
			D: raw[i],
			E: raw[orbit.ME(i, st.Sigma, meOffset)],
			F: raw[orbit.MF(i, st.Sigma, mfOffset)],
		}
	}
	return out
}

// Clone returns a deep, fully independent copy of st.
func (st *State) Clone() *State {
	out := &State{
		S:        st.S,
		Sigma:    st.Sigma,
		meOffset: st.meOffset,
		mfOffset: st.mfOffset,
		Raw:      CloneRaw(st.Raw),
		Index:    muldex.New(),
		Rank:     st.Rank,
		BestRank: st.BestRank,
		Best:     CloneRaw(st.Best),
		Flips:    st.Flips,
		Plus:     st.Plus,
		Target:   st.Target.Clone(),
	}
	for i, v := range out.Raw {
		if !v.IsZero() {
			out.Index.Add(i, v)
		}
	}
	return out
}

// CloneRaw deep-copies a raw coordinate slice.
func CloneRaw(raw []bitboard.Bits) []bitboard.Bits {
	out := make([]bitboard.Bits, len(raw))
	for i, v := range raw {
		out[i] = v.Clone()
	}
	return out
}

// AssertInvariants checks I1 (tensor fidelity) and the structural part of
// I2 (term count a multiple of sigma, me/mf mutual inverses, which makes
// each local 3-group cyclic by construction); the σ=6 reflective relation
// between an orbit's two halves is not checked. It panics on breach, per spec §7 ("invariant breach ... treated as
// fatal; never recovered"). Callers gate this behind a debug flag — it
// is never on the release hot path (design notes §9).
func (st *State) AssertInvariants() {
	got := tensor.Evaluate(st.ResultLiveTerms(), st.S)
	if !got.Equal(st.Target) {
		panic("core: I1 breach: term set no longer represents the target tensor")
	}
	if !orbit.Valid(st.Sigma) {
		panic(fmt.Sprintf("core: %v", orbit.ErrBadDegree))
	}
	if len(st.Raw)%st.Sigma != 0 {
		panic("core: I2 breach: term count is not a multiple of sigma")
	}
	for i := range st.Raw {
		if st.MF(st.ME(i)) != i || st.ME(st.MF(i)) != i {
			panic("core: I2 breach: me/mf are not mutual inverses within this term's local group")
		}
	}
}

// ResultLiveTerms materializes the live (not best) term set, used by
// AssertInvariants so a debug check never depends on Snapshot having
// run first.
func (st *State) ResultLiveTerms() []term.Term {
	out := make([]term.Term, len(st.Raw))
	for i := range st.Raw {
		out[i] = st.Term(i)
	}
	return out
}
