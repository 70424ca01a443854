// Package term defines Term, the rank-one building block of a flip-graph
// multiplication set (spec §3, "Multiplication term"): a triple (d, e, f)
// of equal-width bitboard.Bits interpreted as the tensor term d⊗e⊗f.
//
// Term is deliberately dependency-free (only bitboard) so that both the
// tensor-evaluation packages (tensor, which validates I1) and the
// state-holding package (core, which asserts I1 using tensor) can import it
// without a cycle.
package term

import "github.com/flipgraph/gf2mm/bitboard"

// Term is one rank-one component of a represented tensor: d⊗e⊗f.
// A Term with all three slots zero is a logically deleted (or
// not-yet-used headroom) position; its array slot stays reserved.
type Term struct {
	D, E, F bitboard.Bits
}

// IsZero reports whether all three coordinate slots are zero, i.e. this
// term contributes nothing to the represented tensor (spec §3 Lifecycle).
func (t Term) IsZero() bool {
	return t.D.IsZero() && t.E.IsZero() && t.F.IsZero()
}

// Zeroed returns a same-width all-zero Term, the shape of a logically
// deleted position (spec §4.D).
func Zeroed(s int) Term {
	return Term{D: bitboard.New(s), E: bitboard.New(s), F: bitboard.New(s)}
}

// Diagonal builds a cube term (spec §4.G) with d=e=f=v — the shape every
// "cube" seed contributes regardless of whether it came from a diagonal or
// a full bit pattern.
func Diagonal(v bitboard.Bits) Term {
	return Term{D: v.Clone(), E: v.Clone(), F: v.Clone()}
}

// Clone returns a deep copy, independent of the receiver's backing words.
func (t Term) Clone() Term {
	return Term{D: t.D.Clone(), E: t.E.Clone(), F: t.F.Clone()}
}

// Volume returns popcount(d)·popcount(e)·popcount(f), the "volume" size
// metric used by a positive MAXIMUM_SIZE cap (spec §4.D).
func (t Term) Volume() int {
	return t.D.PopCount() * t.E.PopCount() * t.F.PopCount()
}

// MaxLength returns the largest single-slot popcount, the "length" size
// metric used by a negative MAXIMUM_SIZE cap (spec §4.D).
func (t Term) MaxLength() int {
	m := t.D.PopCount()
	if v := t.E.PopCount(); v > m {
		m = v
	}
	if v := t.F.PopCount(); v > m {
		m = v
	}
	return m
}
