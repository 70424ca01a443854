// Package config defines typed enumerations for the external input-file
// DSL's keyword values (spec §6): termination strategy, size-cap mode,
// plus-transition spacing mode, and run type. It deposits parsed values
// into well-typed homes for `blob.Header`/`solver.Config`; it does not
// read or lex the input file itself.
package config

import "github.com/flipgraph/gf2mm/flip"

// TerminationKind selects one of solver's TerminationStrategy
// implementations, matching the DSL's LIMIT/EARLY/RESET/SPLIT keyword.
type TerminationKind int

const (
	// Limit is the flat flip-budget strategy.
	Limit TerminationKind = iota
	// Early reallocates the remaining budget on every new record.
	Early
	// Reset grants a fresh budget on every new record.
	Reset
	// Split runs Early at a reduced budget above a rank threshold, full
	// budget below it.
	Split
)

// SizeCapKind selects whether and how flip/plus candidates are capped,
// matching the DSL's NONE/LENGTH k/VOLUME k keyword.
type SizeCapKind int

const (
	// NoSizeCap disables size-cap rejection entirely.
	NoSizeCap SizeCapKind = iota
	// LengthCap rejects a candidate if any slot it newly writes has more
	// than k set bits; slots the candidate leaves unchanged are not checked.
	LengthCap
	// VolumeCap rejects a candidate whose d*e*f popcount product exceeds k.
	VolumeCap
)

// PlusSpacing selects how the next plus-eligible flip count is chosen,
// matching the DSL's uniform/random keyword.
type PlusSpacing int

const (
	// UniformSpacing schedules the next plus exactly F flips later.
	UniformSpacing PlusSpacing = iota
	// RandomSpacing schedules the next plus uniform(0, 2F) flips later.
	RandomSpacing
)

// RunType selects whether a solve starts fresh or resumes a persisted
// state, matching the DSL's NEW/CONTINUATION keyword.
type RunType int

const (
	// NewRun starts from a freshly seeded state.
	NewRun RunType = iota
	// ContinuationRun resumes from a previously persisted blob.
	ContinuationRun
)

// SizeCap translates a parsed (kind, k) pair into the flip.SizeCap
// encoding, where the sign distinguishes length from volume (spec
// §4.D): a positive cap bounds volume, a negative one bounds length.
func SizeCap(kind SizeCapKind, k int) flip.SizeCap {
	switch kind {
	case LengthCap:
		return flip.SizeCap(-k)
	case VolumeCap:
		return flip.SizeCap(k)
	default:
		return flip.NoCap
	}
}
