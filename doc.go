// Package gf2mm searches for low-rank bilinear algorithms computing an
// N×N matrix product over GF(2), using the flip-graph random walk of
// Kauers & Moosbauer together with the plus-transition escape move of
// Arai, Ichikawa & Hukushima.
//
// The walk lives over a set of rank-one terms ("multiplications") that
// together represent a fixed tensor; flips trade two terms for a
// cheaper-looking pair without changing what they represent, occasional
// zero-collapses drop the term count, and plus transitions add one new
// orbit to escape a local minimum when no flip can make further
// progress. A cyclic (σ=3) or dihedral (σ=6) symmetry is enforced
// throughout so every mutation updates an entire orbit at once.
//
// Packages, roughly bottom-up:
//
//	bitboard/ — fixed-width GF(2) bit vectors
//	term/     — a single rank-one (d,e,f) term
//	tensor/   — target tensor construction and evaluation, row/col layouts
//	orbit/    — cyclic/dihedral partner tables, orbit decomposition
//	muldex/   — O(1) index over the live term set for flip sampling
//	core/     — the live flip-graph state and its invariants
//	flip/     — flip selection, mutation, zero-collapse
//	plus/     — plus-transition escape move and its firing schedule
//	solver/   — termination strategies and the driving loop
//	seed/     — turning a starting guess into an initial state
//	persist/  — the persisted solution text format
//	blob/     — the solver's input/output record
//	config/   — typed enumerations for the external input-file DSL
package gf2mm
