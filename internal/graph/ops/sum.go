package ops

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// AllAxes selects a full reduction to a 0-D scalar.
const AllAxes = -1

// Sum reduces a tensor along one axis, or fully when axis is AllAxes.
type Sum struct {
	axis    int
	keepDim bool
}

// NewSum creates a full reduction.
func NewSum() *Sum {
	return &Sum{axis: AllAxes}
}

// NewSumAxis creates a reduction along a single axis.
func NewSumAxis(axis int, keepDim bool) *Sum {
	return &Sum{axis: axis, keepDim: keepDim}
}

// Name returns the operation name.
func (op *Sum) Name() string { return "Sum" }

// Signature includes the axis configuration.
func (op *Sum) Signature() string {
	if op.axis == AllAxes {
		return "Sum{all}"
	}
	return fmt.Sprintf("Sum{axis:%d,keep:%t}", op.axis, op.keepDim)
}

// InferTypes removes (or keeps as broadcastable) the reduced axis.
func (op *Sum) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != 1 {
		return nil, graph.NewTypeError("Sum", "expected 1 input, got %d", len(inputs))
	}
	in := inputs[0]
	if op.axis == AllAxes {
		return []*graph.TensorType{graph.ScalarType(in.DType())}, nil
	}
	if !in.Ranked() {
		return nil, graph.NewTypeError("Sum", "axis reduction requires a known rank")
	}
	if op.axis < 0 || op.axis >= in.Rank() {
		return nil, graph.NewTypeError("Sum", "axis %d out of range for rank %d", op.axis, in.Rank())
	}

	pattern := make([]bool, 0, in.Rank())
	for i, b := range in.Broadcastable() {
		switch {
		case i != op.axis:
			pattern = append(pattern, b)
		case op.keepDim:
			pattern = append(pattern, true)
		}
	}
	return []*graph.TensorType{graph.NewTensorType(in.DType(), pattern)}, nil
}

// Perform reduces the concrete tensor.
func (op *Sum) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	var out *tensor.RawTensor
	var err error
	if op.axis == AllAxes {
		out, err = b.Sum(inputs[0])
	} else {
		out, err = b.SumDim(inputs[0], op.axis, op.keepDim)
	}
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
