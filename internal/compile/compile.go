package compile

import (
	"github.com/pkg/errors"

	"github.com/HelloBroBro/pytensor/internal/backend/cpu"
	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/link"
	"github.com/HelloBroBro/pytensor/internal/rewrite"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

var defaultBackend tensor.Backend = cpu.New()

// Compile traces the graph between inputs and outputs, rewrites a private
// clone of it under the given mode, links the result, and caches the
// compiled function in the shared cache. Repeating the call with a
// structurally identical graph and mode returns the cached function
// without re-running the rewrite engine.
func Compile(inputs, outputs []*graph.Variable, mode Mode) (*link.CompiledFunction, error) {
	return CompileInto(shared, inputs, outputs, mode)
}

// CompileInto is Compile against an explicit cache.
func CompileInto(cache *Cache, inputs, outputs []*graph.Variable, mode Mode) (*link.CompiledFunction, error) {
	fg, err := fgraph.New(inputs, outputs)
	if err != nil {
		return nil, err
	}
	sig := Signature(fg, mode)
	return cache.GetOrCompile(sig, func() (*link.CompiledFunction, error) {
		return build(fg, mode)
	})
}

// build runs the rewrite and link stages on a private clone, leaving the
// caller's expression graph untouched.
func build(fg *fgraph.FunctionGraph, mode Mode) (*link.CompiledFunction, error) {
	work, _, err := fg.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "cloning graph for compilation")
	}

	engine := rewrite.NewEngine(mode.RewriteRoundsLimit, passes(mode)...)
	engine.Run(work)

	return link.Link(work, defaultBackend)
}

// passes assembles the pipeline for a mode. Lowering runs first in every
// mode (the linker requires a perform behavior per node), then the local
// algebraic rules, then the global optimizations unless fast-compile
// skips them.
func passes(mode Mode) []rewrite.Rewriter {
	ps := []rewrite.Rewriter{rewrite.Lowering()}
	ps = append(ps, rewrite.AlgebraicSimplifications()...)
	ps = append(ps, rewrite.ConstantFolding(defaultBackend))
	if !mode.FastCompile {
		ps = append(ps, rewrite.CSE(), rewrite.ElemwiseFusion())
	}
	return ps
}
