package solver

import (
	"errors"

	"github.com/flipgraph/gf2mm/flip"
	"github.com/flipgraph/gf2mm/plus"
)

// ErrBadConfig is returned by NewConfig when the supplied options
// describe an unrunnable configuration.
var ErrBadConfig = errors.New("solver: invalid configuration")

// Config bundles everything a Run call needs beyond the live state.
// Zero value is not meaningful; build one with NewConfig.
type Config struct {
	TargetRank int
	FlipLimit  int
	Strategy   Strategy

	PlusAfter   int
	PlusSpacing plus.Spacing
	// PlusLimit caps live rank (spec §4.E): once State.Rank >= PlusLimit
	// a scheduled or forced plus transition is skipped, since there is no
	// headroom left for the new orbit it would add. Rechecked against the
	// live rank every iteration, so it re-enables the instant a collapse
	// drops rank back below it.
	PlusLimit int

	SizeCap flip.SizeCap
	Seed    int64

	// SampleEvery, when > 0, enables History recording every N flips.
	SampleEvery int

	// Debug gates the expensive AssertInvariants call after every flip
	// and plus transition (spec §7: debug-build-only invariant checks).
	Debug bool
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithStrategy overrides the default Limit termination strategy.
func WithStrategy(s Strategy) Option { return func(c *Config) { c.Strategy = s } }

// WithPlusSchedule sets the plus-transition spacing, after-interval, and
// the live-rank cap above which pluses are skipped (spec §4.E).
func WithPlusSchedule(spacing plus.Spacing, after, limit int) Option {
	return func(c *Config) {
		c.PlusSpacing = spacing
		c.PlusAfter = after
		c.PlusLimit = limit
	}
}

// WithSizeCap bounds the term size flip and plus candidates may produce.
func WithSizeCap(cap flip.SizeCap) Option { return func(c *Config) { c.SizeCap = cap } }

// WithSeed fixes the RNG seed for a deterministic run.
func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

// WithHistory enables (flips, rank) sampling every n flips.
func WithHistory(n int) Option { return func(c *Config) { c.SampleEvery = n } }

// WithDebug turns on invariant assertions after every mutation.
func WithDebug() Option { return func(c *Config) { c.Debug = true } }

// NewConfig builds a Config with spec-default policy (Limit strategy, no
// size cap, uniform plus spacing after every flipLimit/20 flips) and
// applies opts on top.
func NewConfig(targetRank, flipLimit, sigma int, opts ...Option) (Config, error) {
	if flipLimit <= 0 {
		return Config{}, ErrBadConfig
	}
	if targetRank < 0 {
		return Config{}, ErrBadConfig
	}
	plusAfter := flipLimit / 20
	if plusAfter < sigma {
		plusAfter = sigma
	}
	cfg := Config{
		TargetRank:  targetRank,
		FlipLimit:   flipLimit,
		Strategy:    Limit{},
		PlusAfter:   plusAfter,
		PlusSpacing: plus.Uniform,
		PlusLimit:   flipLimit, // effectively unbounded unless overridden
		SizeCap:     flip.NoCap,
		Seed:        0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Strategy == nil {
		return Config{}, ErrBadConfig
	}
	return cfg, nil
}
