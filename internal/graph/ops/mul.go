package ops

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Mul is element-wise multiplication with broadcasting.
type Mul struct {
	binaryElemwise
}

// NewMul creates a Mul operation.
func NewMul() *Mul {
	return &Mul{binaryElemwise{name: "Mul"}}
}

// Perform computes a * b.
func (op *Mul) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Mul(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
