// Copyright 2026 The PyTensor Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HelloBroBro/pytensor/graph"
	"github.com/HelloBroBro/pytensor/tensor"
)

func TestEvalScalarAdd(t *testing.T) {
	x := graph.Scalar(tensor.Float64, "x")
	y := graph.Scalar(tensor.Float64, "y")
	z, err := graph.Add(x, y)
	require.NoError(t, err)

	got, err := graph.Eval(z, graph.Bindings{
		x: tensor.Scalar(2.0),
		y: tensor.Scalar(3.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.AsFloat64()[0])

	got, err = graph.Eval(z, graph.Bindings{
		x: tensor.Scalar(16.3),
		y: tensor.Scalar(12.1),
	})
	require.NoError(t, err)
	assert.InDelta(t, 28.4, got.AsFloat64()[0], 1e-9)
}

func TestEvalMatrixAdd(t *testing.T) {
	x := graph.Matrix(tensor.Float64, "x")
	y := graph.Matrix(tensor.Float64, "y")
	z, err := graph.Add(x, y)
	require.NoError(t, err)

	xv, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	yv, err := tensor.FromSlice([]float64{10, 20, 30, 40}, tensor.Shape{2, 2})
	require.NoError(t, err)

	got, err := graph.Eval(z, graph.Bindings{x: xv, y: yv})
	require.NoError(t, err)
	assert.True(t, got.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float64{11, 22, 33, 44}, got.AsFloat64())
}

func TestEvalBroadcastsRowAgainstMatrix(t *testing.T) {
	m := graph.Matrix(tensor.Float64, "m")
	b := graph.Row(tensor.Float64, "b")
	z, err := graph.Add(m, b)
	require.NoError(t, err)

	mv, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	bv, err := tensor.FromSlice([]float64{10, 20, 30}, tensor.Shape{1, 3})
	require.NoError(t, err)

	got, err := graph.Eval(z, graph.Bindings{m: mv, b: bv})
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, got.AsFloat64())
}

func TestOperationsRejectTypeMismatch(t *testing.T) {
	x := graph.Scalar(tensor.Float64, "x")
	y := graph.Scalar(tensor.Float32, "y")

	_, err := graph.Add(x, y)
	require.Error(t, err)
	var terr *graph.TypeError
	assert.ErrorAs(t, err, &terr)

	// An explicit cast fixes it.
	yAsF64, err := graph.Cast(y, tensor.Float64)
	require.NoError(t, err)
	_, err = graph.Add(x, yAsF64)
	assert.NoError(t, err)
}

func TestEvalExpressionChain(t *testing.T) {
	x := graph.Vector(tensor.Float64, "x")
	w := graph.Vector(tensor.Float64, "w")

	xw, err := graph.Mul(x, w)
	require.NoError(t, err)
	s, err := graph.Sum(xw)
	require.NoError(t, err)
	out, err := graph.Sqrt(s)
	require.NoError(t, err)

	xv, err := tensor.FromSlice([]float64{1, 2, 2}, tensor.Shape{3})
	require.NoError(t, err)
	wv, err := tensor.FromSlice([]float64{1, 2, 2}, tensor.Shape{3})
	require.NoError(t, err)

	got, err := graph.Eval(out, graph.Bindings{x: xv, w: wv})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.AsFloat64()[0], 1e-12) // sqrt(1+4+4)
}

func TestEvalDot(t *testing.T) {
	a := graph.Matrix(tensor.Float64, "a")
	b := graph.Matrix(tensor.Float64, "b")
	c, err := graph.Dot(a, b)
	require.NoError(t, err)

	av, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	bv, err := tensor.FromSlice([]float64{5, 6, 7, 8}, tensor.Shape{2, 2})
	require.NoError(t, err)

	got, err := graph.Eval(c, graph.Bindings{a: av, b: bv})
	require.NoError(t, err)
	assert.Equal(t, []float64{19, 22, 43, 50}, got.AsFloat64())
}

func TestStr(t *testing.T) {
	x := graph.Vector(tensor.Float64, "x")
	y := graph.Vector(tensor.Float64, "y")

	mul, err := graph.Mul(x, y)
	require.NoError(t, err)
	exp, err := graph.Exp(x)
	require.NoError(t, err)
	out, err := graph.Add(mul, exp)
	require.NoError(t, err)

	assert.Equal(t, "Add(Mul(x, y), Exp(x))", graph.Str(out))
}
