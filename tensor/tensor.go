// Package tensor implements the Tensor codec (spec §4.A): construction of
// the S³-bit target matrix-multiplication tensor, the outer-product
// contribution of one rank-one term, full-set evaluation (used only to
// assert I1, never in the flip hot loop — design notes §9), and the four
// row/column layouts a persisted solution may be printed under.
package tensor

import (
	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/term"
)

// Target builds the S³-bit tensor for an N×N matrix-multiplication problem
// under the given Layout: bit (a + S·b + S²·c) is set iff the (row,col)
// triple the layout assigns to (a,b,c) is (i,j), (j,k), (k,i) for some
// i, j, k — the trace form Σ a_{ij}·b_{jk}·c_{ki}, in which c holds the
// transposed product. That is: a's column equals b's row, b's column
// equals c's row, and c's column equals a's row. This form is invariant
// under cyclic rotation of (a,b,c) whenever all three slots share one
// coordinate assignment (Normal, ByDimension), which orbit.BuildSymmetric
// relies on.
//
// Complexity: O(S³); called once at setup, never in the hot loop.
func Target(lay Layout) bitboard.Bits {
	s := lay.S
	width := s * s * s
	out := bitboard.New(width)
	for a := 0; a < s; a++ {
		ia, ja := lay.RowA[a], lay.ColA[a]
		for b := 0; b < s; b++ {
			jb, kb := lay.RowB[b], lay.ColB[b]
			if ja != jb {
				continue
			}
			for c := 0; c < s; c++ {
				ic, kc := lay.RowC[c], lay.ColC[c]
				if ia == kc && kb == ic {
					out.Set(a + s*b + s*s*c)
				}
			}
		}
	}
	return out
}

// Outer computes the S³-bit contribution of a single rank-one term
// d⊗e⊗f, per spec §4.A's nested-shift definition: for every set bit a of
// d, b of e, c of f, set bit a+S·b+S²·c.
func Outer(t term.Term, s int) bitboard.Bits {
	width := s * s * s
	out := bitboard.New(width)
	for _, a := range t.D.Entries() {
		for _, b := range t.E.Entries() {
			for _, c := range t.F.Entries() {
				out.Set(a + s*b + s*s*c)
			}
		}
	}
	return out
}

// Index3 returns the flat bit position a+S·b+S²·c for a term-space
// coordinate triple, the same addressing scheme Outer and Target use. It
// is exported so orbit can sweep and clear residual bits without
// duplicating the addressing arithmetic.
func Index3(s, a, b, c int) int {
	return a + s*b + s*s*c
}

// Decode3 is the inverse of Index3.
func Decode3(s, d int) (a, b, c int) {
	a = d % s
	rest := d / s
	b = rest % s
	c = rest / s
	return a, b, c
}

// Evaluate XORs the outer product of every term together, the "full
// evaluation" used to assert I1 (tensor fidelity) at snapshot points. It
// is never called from the flip/plus hot loop (design notes §9).
func Evaluate(terms []term.Term, s int) bitboard.Bits {
	width := s * s * s
	out := bitboard.New(width)
	for _, t := range terms {
		out.XorInPlace(Outer(t, s))
	}
	return out
}
