package ops

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Dot is the vector/matrix product: vec·vec, mat·mat, mat·vec or vec·mat.
type Dot struct{}

// NewDot creates a Dot operation.
func NewDot() *Dot {
	return &Dot{}
}

// Name returns the operation name.
func (op *Dot) Name() string { return "Dot" }

// Signature returns the operation identity.
func (op *Dot) Signature() string { return "Dot" }

// InferTypes requires two operands of the same float or integer kind with
// known rank 1 or 2; the output keeps the outer axes' broadcastable flags.
func (op *Dot) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != 2 {
		return nil, graph.NewTypeError("Dot", "expected 2 inputs, got %d", len(inputs))
	}
	a, b := inputs[0], inputs[1]
	if a.DType() != b.DType() {
		return nil, graph.NewTypeError("Dot", "element kinds do not match: %s vs %s", a.DType(), b.DType())
	}
	if !a.Ranked() || !b.Ranked() {
		return nil, graph.NewTypeError("Dot", "operands must have known rank")
	}
	if a.Rank() < 1 || a.Rank() > 2 || b.Rank() < 1 || b.Rank() > 2 {
		return nil, graph.NewTypeError("Dot", "operands must be 1-D or 2-D, got ranks %d and %d", a.Rank(), b.Rank())
	}

	var pattern []bool
	if a.Rank() == 2 {
		pattern = append(pattern, a.Broadcastable()[0])
	}
	if b.Rank() == 2 {
		pattern = append(pattern, b.Broadcastable()[1])
	}
	return []*graph.TensorType{graph.NewTensorType(a.DType(), pattern)}, nil
}

// Perform computes the product.
func (op *Dot) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.MatMul(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
