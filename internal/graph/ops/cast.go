package ops

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Cast converts a tensor to another element kind. It is the only
// dtype-changing operation: the type system itself never promotes.
type Cast struct {
	dtype tensor.DataType
}

// NewCast creates a Cast to the given element kind.
func NewCast(dtype tensor.DataType) *Cast {
	return &Cast{dtype: dtype}
}

// Name returns the operation name.
func (op *Cast) Name() string { return "Cast" }

// Signature includes the target element kind.
func (op *Cast) Signature() string {
	return "Cast{to:" + op.dtype.String() + "}"
}

func (op *Cast) elemwise() {}

// InferTypes keeps the broadcastable pattern and swaps the element kind.
func (op *Cast) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != 1 {
		return nil, graph.NewTypeError("Cast", "expected 1 input, got %d", len(inputs))
	}
	in := inputs[0]
	if !in.Ranked() {
		return []*graph.TensorType{graph.NewAnyRankType(op.dtype)}, nil
	}
	return []*graph.TensorType{graph.NewTensorType(op.dtype, in.Broadcastable())}, nil
}

// Perform converts the concrete tensor.
func (op *Cast) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Cast(inputs[0], op.dtype)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
