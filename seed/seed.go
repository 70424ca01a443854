// Package seed turns a user-supplied starting guess (diagonal or full
// "cube" terms, spec §4.G) into the residual-only flip-graph State the
// Controller actually walks, plus the frozen cube terms and plus-budget
// the caller must stitch back in at the end.
//
// The supplied cubes are never made part of the mutable term array: they
// are evaluated once to compute the residual the live state must
// represent, then carried alongside it untouched — matching
// `standardrun`'s two-stage assembly, where the flip/plus solver only
// ever sees the orbit-decomposed residual and reserved headroom, and the
// seed cubes are re-appended to the result afterward.
package seed

import (
	"errors"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/core"
	"github.com/flipgraph/gf2mm/orbit"
	"github.com/flipgraph/gf2mm/tensor"
	"github.com/flipgraph/gf2mm/term"
)

// ErrBadCubeLength is returned by Cubes/FullCubes when a seed string's
// length doesn't match the expected dimension.
var ErrBadCubeLength = errors.New("seed: cube string length mismatch")

// Cubes parses diagonal-cube seed strings: each string has length n, and
// a '1' at position y places a diagonal unit entry at (y,y), folded into
// one full cube term (D=E=F=x) per string (spec §4.G).
func Cubes(diag []string, n int) ([]term.Term, error) {
	s := n * n
	out := make([]term.Term, 0, len(diag))
	for _, dc := range diag {
		if len(dc) != n {
			return nil, ErrBadCubeLength
		}
		var entries []int
		for y := 0; y < n; y++ {
			if dc[y] == '1' {
				entries = append(entries, y*n+y)
			}
		}
		x := bitboard.FromEntries(s, entries)
		out = append(out, term.Term{D: x, E: x, F: x})
	}
	return out, nil
}

// FullCubes parses full-pattern cube seed strings: each string has
// length S=n², and a '1' at position p places a set bit at slot p,
// folded into one full cube term per string (spec §4.G).
func FullCubes(full []string, n int) ([]term.Term, error) {
	s := n * n
	out := make([]term.Term, 0, len(full))
	for _, fc := range full {
		if len(fc) != s {
			return nil, ErrBadCubeLength
		}
		var entries []int
		for p := 0; p < s; p++ {
			if fc[p] == '1' {
				entries = append(entries, p)
			}
		}
		x := bitboard.FromEntries(s, entries)
		out = append(out, term.Term{D: x, E: x, F: x})
	}
	return out, nil
}

// Assembly is the outcome of Assemble: the live residual State the
// Controller should run, the frozen cube terms to prepend to any
// reported result, and the residual target rank / plus budget derived
// from the caller's overall target and plus limit.
type Assembly struct {
	State          *core.State
	FrozenCubes    []term.Term
	ResidualTarget int // overall target rank minus len(cubes)
	PlusBudget     int // cap on State.Plus (cumulative plus-added rank)
}

// Assemble computes the residual tensor (target XOR cubes), decomposes
// it into an orbit-respecting term set via orbit.BuildSymmetric, reserves
// zero-valued headroom slots (rounded down to a multiple of sigma) so
// later plus transitions always have a slot to grow into, and returns
// the resulting State plus the bookkeeping the Controller needs.
//
// headroom = floor_round_down(plusLimit - len(cubes) - len(decomposed), sigma),
// clamped to zero when negative — mirroring `standardrun`'s
// `headroom-=headroom%symm` exactly, including Python's floor (not
// truncating) modulo for negative headroom.
func Assemble(cubes []term.Term, n, sigma, plusLimit, targetRank int) (Assembly, error) {
	lay := tensor.NewLayout(tensor.Normal, n)
	target := tensor.Target(lay)
	s := lay.S

	cubesTensor := tensor.Evaluate(cubes, s)
	residual := target.Xor(cubesTensor)

	decomposed, err := orbit.BuildSymmetric(residual, s, sigma)
	if err != nil {
		return Assembly{}, err
	}

	l := len(cubes)
	headroom := floorRoundDown(plusLimit-l-len(decomposed), sigma)
	if headroom < 0 {
		headroom = 0
	}

	muls := make([]term.Term, 0, len(decomposed)+headroom)
	muls = append(muls, decomposed...)
	for i := 0; i < headroom; i++ {
		z := bitboard.New(s)
		muls = append(muls, term.Term{D: z, E: z, F: z})
	}

	st, err := core.NewState(muls, sigma, s, residual)
	if err != nil {
		return Assembly{}, err
	}

	return Assembly{
		State:          st,
		FrozenCubes:    cubes,
		ResidualTarget: targetRank - l,
		PlusBudget:     headroom,
	}, nil
}

// floorRoundDown rounds x down to the nearest multiple of m (m > 0),
// using floored (not truncated) modulo so negative x rounds toward
// -infinity, matching Python's % operator.
func floorRoundDown(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return x - r
}
