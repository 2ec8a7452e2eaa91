package ops

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Pow is element-wise exponentiation with broadcasting.
type Pow struct {
	binaryElemwise
}

// NewPow creates a Pow operation.
func NewPow() *Pow {
	return &Pow{binaryElemwise{name: "Pow"}}
}

// Perform computes a ** b.
func (op *Pow) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Pow(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
