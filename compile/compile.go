// Copyright 2026 The PyTensor Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compile is the public API for turning symbolic expressions
// into callable functions.
//
// Example:
//
//	x := graph.Matrix(tensor.Float64, "x")
//	y := graph.Matrix(tensor.Float64, "y")
//	z, _ := graph.Add(x, y)
//	fn, err := compile.Compile([]*graph.Variable{x, y}, []*graph.Variable{z}, compile.FastRun())
//	outs, err := fn.Call(xv, yv)
//
// Compiled functions are cached process-wide by a structural signature
// of the traced graph and the compilation mode, so compiling an
// equivalent expression twice does the work once.
package compile

import (
	"github.com/HelloBroBro/pytensor/internal/compile"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/link"
)

// Mode selects how aggressively compilation rewrites the graph.
type Mode = compile.Mode

// CompiledFunction is an immutable executable produced by Compile. It is
// safe for concurrent Call.
type CompiledFunction = link.CompiledFunction

// CompileError reports a graph that cannot be linked into thunks.
type CompileError = link.CompileError

// FastRun returns the mode with every rewrite pass enabled.
func FastRun() Mode {
	return compile.FastRun()
}

// FastCompile returns a mode that skips the expensive rewrite passes.
func FastCompile() Mode {
	return compile.FastCompile()
}

// DefaultMode returns the process default, seeded once from optional
// configuration.
func DefaultMode() Mode {
	return compile.DefaultMode()
}

// Compile traces the graph reaching outputs from inputs, rewrites it
// under the given mode, and links it into a callable function. Results
// are cached process-wide by graph signature and mode.
func Compile(inputs, outputs []*graph.Variable, mode Mode) (*CompiledFunction, error) {
	return compile.Compile(inputs, outputs, mode)
}

// CompileCount reports how many compilations the shared cache has
// actually performed, counting each signature's build once.
func CompileCount() int64 {
	return compile.SharedCache().CompileCount()
}

// CacheStats reports shared cache hits and misses.
func CacheStats() (hits, misses int64) {
	return compile.SharedCache().Stats()
}

// ClearCache drops every cached function. Intended for tests.
func ClearCache() {
	compile.SharedCache().Clear()
}
