// Copyright 2026 The PyTensor Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/graph/ops"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

func apply1(op graph.Op, inputs ...*Variable) (*Variable, error) {
	node, err := graph.MakeApply(op, inputs)
	if err != nil {
		return nil, err
	}
	return node.Output(), nil
}

// Add builds the elementwise sum of a and b.
func Add(a, b *Variable) (*Variable, error) {
	return apply1(ops.NewAdd(), a, b)
}

// Sub builds the elementwise difference of a and b.
func Sub(a, b *Variable) (*Variable, error) {
	return apply1(ops.NewSub(), a, b)
}

// Mul builds the elementwise product of a and b.
func Mul(a, b *Variable) (*Variable, error) {
	return apply1(ops.NewMul(), a, b)
}

// Div builds the elementwise quotient of a and b.
func Div(a, b *Variable) (*Variable, error) {
	return apply1(ops.NewDiv(), a, b)
}

// Pow builds the elementwise power a**b.
func Pow(a, b *Variable) (*Variable, error) {
	return apply1(ops.NewPow(), a, b)
}

// Neg builds the elementwise negation of x.
func Neg(x *Variable) (*Variable, error) {
	return apply1(ops.NewNeg(), x)
}

// Exp builds the elementwise exponential of x. Float types only.
func Exp(x *Variable) (*Variable, error) {
	return apply1(ops.NewExp(), x)
}

// Log builds the elementwise natural logarithm of x. Float types only.
func Log(x *Variable) (*Variable, error) {
	return apply1(ops.NewLog(), x)
}

// Sqrt builds the elementwise square root of x. Float types only.
func Sqrt(x *Variable) (*Variable, error) {
	return apply1(ops.NewSqrt(), x)
}

// Sigmoid builds the logistic function of x. Float types only. The node
// is lowered to primitive operations during compilation.
func Sigmoid(x *Variable) (*Variable, error) {
	return apply1(ops.NewSigmoid(), x)
}

// Dot builds the generalized dot product of a and b: inner product for
// two vectors, matrix product for two matrices, matrix-vector otherwise.
func Dot(a, b *Variable) (*Variable, error) {
	return apply1(ops.NewDot(), a, b)
}

// Transpose permutes the axes of x. A nil permutation reverses them.
func Transpose(x *Variable, axes []int) (*Variable, error) {
	return apply1(ops.NewTranspose(axes), x)
}

// Reshape reinterprets x with a new shape of the same element count.
func Reshape(x *Variable, shape tensor.Shape) (*Variable, error) {
	return apply1(ops.NewReshape(shape), x)
}

// Sum reduces x over all axes to a scalar.
func Sum(x *Variable) (*Variable, error) {
	return apply1(ops.NewSum(), x)
}

// SumAxis reduces x along one axis, optionally keeping it as size 1.
func SumAxis(x *Variable, axis int, keepDim bool) (*Variable, error) {
	return apply1(ops.NewSumAxis(axis, keepDim), x)
}

// Cast converts the elements of x to another data type.
func Cast(x *Variable, dtype tensor.DataType) (*Variable, error) {
	return apply1(ops.NewCast(dtype), x)
}
