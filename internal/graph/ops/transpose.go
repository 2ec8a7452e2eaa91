package ops

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Transpose permutes tensor axes. A nil axes list reverses all dimensions.
type Transpose struct {
	axes []int
}

// NewTranspose creates a Transpose with an explicit permutation, or the
// full reversal when axes is nil.
func NewTranspose(axes []int) *Transpose {
	return &Transpose{axes: append([]int(nil), axes...)}
}

// Name returns the operation name.
func (op *Transpose) Name() string { return "Transpose" }

// Signature includes the permutation.
func (op *Transpose) Signature() string {
	return fmt.Sprintf("Transpose{axes:%v}", op.axes)
}

// InferTypes permutes the input's broadcastable pattern.
func (op *Transpose) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != 1 {
		return nil, graph.NewTypeError("Transpose", "expected 1 input, got %d", len(inputs))
	}
	in := inputs[0]
	if !in.Ranked() {
		return nil, graph.NewTypeError("Transpose", "operand must have known rank")
	}

	axes := op.axes
	if axes == nil {
		axes = make([]int, in.Rank())
		for i := range axes {
			axes[i] = in.Rank() - 1 - i
		}
	}
	if len(axes) != in.Rank() {
		return nil, graph.NewTypeError("Transpose", "got %d axes for rank-%d operand", len(axes), in.Rank())
	}

	pattern := in.Broadcastable()
	permuted := make([]bool, len(pattern))
	seen := make([]bool, len(pattern))
	for i, ax := range axes {
		if ax < 0 || ax >= len(pattern) || seen[ax] {
			return nil, graph.NewTypeError("Transpose", "axes %v is not a permutation of [0,%d)", axes, len(pattern))
		}
		seen[ax] = true
		permuted[i] = pattern[ax]
	}
	return []*graph.TensorType{graph.NewTensorType(in.DType(), permuted)}, nil
}

// Perform permutes the concrete tensor's axes.
func (op *Transpose) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Transpose(inputs[0], op.axes)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
