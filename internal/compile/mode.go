// Package compile drives the full pipeline: trace a function graph,
// rewrite it, link it, and cache the result by structural signature.
package compile

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/config"
)

// Mode configures one compilation. The zero value is not meaningful; use
// FastRun, FastCompile or DefaultMode.
type Mode struct {
	// FastCompile trades execution speed for compile latency: the CSE and
	// fusion passes are skipped. Lowering and the local algebraic rules
	// always run.
	FastCompile bool
	// RewriteRoundsLimit bounds the rewrite engine's fixed-point
	// iteration. Must be positive.
	RewriteRoundsLimit int
}

// FastRun enables every rewrite pass.
func FastRun() Mode {
	return Mode{RewriteRoundsLimit: config.DefaultRewriteRounds}
}

// FastCompile skips the global optimization passes.
func FastCompile() Mode {
	return Mode{FastCompile: true, RewriteRoundsLimit: config.DefaultRewriteRounds}
}

// DefaultMode returns the process-wide default, seeded once at startup
// from the optional config file.
func DefaultMode() Mode {
	cfg := config.Load()
	m := FastRun()
	if cfg.Mode == "fast_compile" {
		m = FastCompile()
	}
	if cfg.RewriteRounds > 0 {
		m.RewriteRoundsLimit = cfg.RewriteRounds
	}
	return m
}

// WithRewriteRoundsLimit returns a copy of m with the round limit set.
func (m Mode) WithRewriteRoundsLimit(limit int) Mode {
	m.RewriteRoundsLimit = limit
	return m
}

// key contributes the mode to cache signatures.
func (m Mode) key() string {
	return fmt.Sprintf("mode{fast_compile:%t,rounds:%d}", m.FastCompile, m.RewriteRoundsLimit)
}
