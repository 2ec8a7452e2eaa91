// Copyright 2026 The PyTensor Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph is the public API for building symbolic tensor
// expressions.
//
// Expressions are built from typed Variables and operation helpers, then
// evaluated lazily or compiled into reusable functions:
//
//	x := graph.Scalar(tensor.Float64, "x")
//	y := graph.Scalar(tensor.Float64, "y")
//	z, _ := graph.Add(x, y)
//	out, _ := graph.Eval(z, graph.Bindings{
//		x: tensor.Scalar(2.0),
//		y: tensor.Scalar(3.0),
//	})
package graph

import (
	"github.com/HelloBroBro/pytensor/internal/compile"
	"github.com/HelloBroBro/pytensor/internal/debugprint"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Variable is a typed symbolic value: a graph input, an operation
// output, or a constant.
type Variable = graph.Variable

// Apply is a single application of an operation to input Variables.
type Apply = graph.Apply

// TensorType describes a Variable's element type and per-axis
// broadcastability.
type TensorType = graph.TensorType

// Op is the operation contract implemented by every node kind.
type Op = graph.Op

// TypeError reports an operation applied to incompatibly typed inputs.
type TypeError = graph.TypeError

// ShapeError reports a concrete value that does not fit a Variable's type.
type ShapeError = graph.ShapeError

// Bindings maps free Variables to the concrete values they take during
// evaluation.
type Bindings = map[*Variable]*tensor.RawTensor

// NewTensorType builds a ranked type from an element type and a per-axis
// broadcastable pattern.
func NewTensorType(dtype tensor.DataType, broadcastable []bool) *TensorType {
	return graph.NewTensorType(dtype, broadcastable)
}

// NewAnyRankType builds a type whose rank is not yet known.
func NewAnyRankType(dtype tensor.DataType) *TensorType {
	return graph.NewAnyRankType(dtype)
}

// NewVariable creates a free input Variable of the given type.
func NewVariable(typ *TensorType, name string) *Variable {
	return graph.NewVariable(typ, name)
}

// Constant creates a Variable carrying a fixed concrete value.
func Constant(value *tensor.RawTensor, name string) *Variable {
	return graph.NewConstant(value, name)
}

// Scalar creates a rank-0 input Variable.
func Scalar(dtype tensor.DataType, name string) *Variable {
	return graph.NewVariable(graph.ScalarType(dtype), name)
}

// Vector creates a rank-1 input Variable with a non-broadcastable axis.
func Vector(dtype tensor.DataType, name string) *Variable {
	return graph.NewVariable(graph.VectorType(dtype), name)
}

// Matrix creates a rank-2 input Variable with non-broadcastable axes.
func Matrix(dtype tensor.DataType, name string) *Variable {
	return graph.NewVariable(graph.MatrixType(dtype), name)
}

// Row creates a rank-2 input Variable whose first axis is broadcastable,
// i.e. a 1xN row that broadcasts against matrices.
func Row(dtype tensor.DataType, name string) *Variable {
	return graph.NewVariable(graph.RowType(dtype), name)
}

// Eval evaluates a single Variable under the given bindings. The
// expression is compiled on first use and the compiled function is
// reused on later calls with the same set of bound Variables.
func Eval(v *Variable, bindings Bindings) (*tensor.RawTensor, error) {
	return compile.Eval(v, bindings)
}

// Str renders the expression rooted at v in prefix form,
// e.g. "Add(Mul(x, y), Exp(z))".
func Str(v *Variable) string {
	return debugprint.Str(v)
}
