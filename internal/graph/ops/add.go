package ops

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Add is element-wise addition with broadcasting.
type Add struct {
	binaryElemwise
}

// NewAdd creates an Add operation.
func NewAdd() *Add {
	return &Add{binaryElemwise{name: "Add"}}
}

// Perform computes a + b.
func (op *Add) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Add(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
