package ops

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Reshape rearranges a tensor into a statically known target shape.
type Reshape struct {
	shape tensor.Shape
}

// NewReshape creates a Reshape targeting the given shape.
func NewReshape(shape tensor.Shape) *Reshape {
	return &Reshape{shape: shape.Clone()}
}

// Name returns the operation name.
func (op *Reshape) Name() string { return "Reshape" }

// Signature includes the target shape.
func (op *Reshape) Signature() string {
	return fmt.Sprintf("Reshape{shape:%v}", op.shape)
}

// InferTypes fixes the output type from the target shape: size-1 axes are
// broadcastable, every other axis arbitrary. The element count match is a
// runtime property checked by the kernel.
func (op *Reshape) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != 1 {
		return nil, graph.NewTypeError("Reshape", "expected 1 input, got %d", len(inputs))
	}
	if err := op.shape.Validate(); err != nil {
		return nil, graph.NewTypeError("Reshape", "invalid target shape: %v", err)
	}
	pattern := make([]bool, len(op.shape))
	for i, d := range op.shape {
		pattern[i] = d == 1
	}
	return []*graph.TensorType{graph.NewTensorType(inputs[0].DType(), pattern)}, nil
}

// Perform copies the elements into the target shape.
func (op *Reshape) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Reshape(inputs[0], op.shape)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
