// Package orbit implements the Symmetry engine (spec §4.B): the e/f
// partner-offset tables shared by every orbit of a given degree σ, and
// BuildSymmetric, which turns a residual seed pattern into an
// orbit-respecting initial term set (invariant I2 by construction).
package orbit

import (
	"errors"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/tensor"
	"github.com/flipgraph/gf2mm/term"
)

// ErrBadDegree is returned when σ is neither 3 nor 6.
var ErrBadDegree = errors.New("orbit: symmetry degree must be 3 or 6")

// Valid reports whether sigma is a supported symmetry degree.
func Valid(sigma int) bool { return sigma == 3 || sigma == 6 }

// partnerOffsets returns, for a single orbit of size sigma, the
// within-orbit local offsets of each term's e-partner and f-partner
// (spec §3's me/mf, given as local position k in an orbit running
// 0..sigma-1). Pure function of sigma; memoized by Partners.
func partnerOffsets(sigma int) (meOffset, mfOffset []int) {
	meOffset = make([]int, sigma)
	mfOffset = make([]int, sigma)
	for k := 0; k < sigma; k++ {
		half := (k / 3) * 3
		lk := k % 3
		meOffset[k] = half + (lk+2)%3
		mfOffset[k] = half + (lk+1)%3
	}
	return meOffset, mfOffset
}

var cache3Me, cache3Mf = partnerOffsets(3)
var cache6Me, cache6Mf = partnerOffsets(6)

// Partners returns the cached within-orbit me/mf offset tables for sigma
// (design notes §9: "precompute a small table rather than recomputing").
func Partners(sigma int) (meOffset, mfOffset []int, err error) {
	switch sigma {
	case 3:
		return cache3Me, cache3Mf, nil
	case 6:
		return cache6Me, cache6Mf, nil
	default:
		return nil, nil, ErrBadDegree
	}
}

// ME returns the e-partner's global index for term index i within an
// array organized into contiguous σ-orbits. Complexity: O(1).
func ME(i, sigma int, meOffset []int) int {
	base := (i / sigma) * sigma
	return base + meOffset[i%sigma]
}

// MF returns the f-partner's global index, analogous to ME.
func MF(i, sigma int, mfOffset []int) int {
	base := (i / sigma) * sigma
	return base + mfOffset[i%sigma]
}

// BuildSymmetric sweeps a residual pattern (an S³-bit tensor) and emits an
// orbit-respecting term set representing it, per spec §4.B. For σ=3 each
// surviving bit (a,b,c) yields the cyclic triple (a,b,c),(c,a,b),(b,c,a);
// for σ=6 it additionally yields the reflected triple built from
// (S−1−a,S−1−b,S−1−c) and its own cyclic rotations. Consumed bits are
// cleared from a private clone of residual, so the caller's Bits is left
// untouched; the returned term count is always a multiple of sigma.
//
// The result represents residual only if residual is invariant under the
// rotations it emits (and, for σ=6, under the reflection). For σ=6 a bit
// that is its own reflection — possible only for odd S, at the centre
// coordinate (S−1)/2 — is emitted six times and cancels, so the result
// then does not represent residual.
func BuildSymmetric(residual bitboard.Bits, s, sigma int) ([]term.Term, error) {
	if !Valid(sigma) {
		return nil, ErrBadDegree
	}

	left := residual.Clone()
	var out []term.Term

	for _, d := range residual.Entries() {
		if !left.Test(d) {
			continue // already consumed by an earlier bit's symmetric image
		}
		a, b, c := tensor.Decode3(s, d)

		emit := func(x, y, z int) {
			out = append(out, term.Term{
				D: bitboard.FromBit(s, x),
				E: bitboard.FromBit(s, y),
				F: bitboard.FromBit(s, z),
			})
			left.Clear(tensor.Index3(s, x, y, z))
		}
		emit(a, b, c)
		emit(c, a, b)
		emit(b, c, a)

		if sigma == 6 {
			ra, rb, rc := s-1-a, s-1-b, s-1-c
			emit(ra, rb, rc)
			emit(rc, ra, rb)
			emit(rb, rc, ra)
		}
	}

	return out, nil
}
