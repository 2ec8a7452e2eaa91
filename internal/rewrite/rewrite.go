// Package rewrite transforms a function graph into a semantically
// equivalent but cheaper form by running an ordered list of passes to a
// fixed point under a bounded round limit.
package rewrite

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/multierr"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
)

// Rewriter is one pass over the container. Apply reports whether it
// changed the graph. A failing pass must leave the container in a valid
// state: individual replacements are atomic, so a rule that fails
// mid-match simply stops.
type Rewriter interface {
	Name() string
	Apply(fg *fgraph.FunctionGraph) (changed bool, err error)
}

// RewriteError wraps a single rule failure. Rule failures are contained:
// the engine logs them, skips the rule for that node, and continues.
type RewriteError struct {
	Rule string
	Err  error
}

// Error implements the error interface.
func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewrite rule %s failed: %v", e.Rule, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RewriteError) Unwrap() error {
	return e.Err
}

var logger = log.New(os.Stderr, "rewrite: ", log.LstdFlags)

// SetLogger redirects the engine's diagnostics. Passing nil silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(logDiscard{}, "", 0)
	}
	logger = l
}

type logDiscard struct{}

func (logDiscard) Write(p []byte) (int, error) { return len(p), nil }

// Result describes one engine run.
type Result struct {
	// Rounds is the number of completed rounds over the pass list.
	Rounds int
	// FixedPoint reports whether the last round changed nothing. When
	// false the round limit stopped iteration; the graph reached so far is
	// still valid, since every individual rewrite preserves semantics.
	FixedPoint bool
	// RuleErrors aggregates contained per-rule failures. Never fatal.
	RuleErrors error
}

// Engine runs its passes in registration order, repeating the whole list
// until a round changes nothing or the round limit is reached.
// Registration order is the documented tie-break between rules that could
// match the same node.
type Engine struct {
	passes    []Rewriter
	maxRounds int
}

// NewEngine creates an engine with the given round limit.
func NewEngine(maxRounds int, passes ...Rewriter) *Engine {
	if maxRounds < 1 {
		maxRounds = 1
	}
	return &Engine{passes: passes, maxRounds: maxRounds}
}

// Run rewrites fg in place.
func (e *Engine) Run(fg *fgraph.FunctionGraph) *Result {
	res := &Result{}
	for res.Rounds < e.maxRounds {
		changed := false
		for _, pass := range e.passes {
			passChanged, err := pass.Apply(fg)
			if err != nil {
				rerr := &RewriteError{Rule: pass.Name(), Err: err}
				logger.Printf("%v (continuing)", rerr)
				res.RuleErrors = multierr.Append(res.RuleErrors, rerr)
			}
			changed = changed || passChanged
		}
		res.Rounds++
		if !changed {
			res.FixedPoint = true
			return res
		}
	}
	logger.Printf("stopping after %d rounds without reaching a fixed point", e.maxRounds)
	return res
}
