package ops

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Sub is element-wise subtraction with broadcasting.
type Sub struct {
	binaryElemwise
}

// NewSub creates a Sub operation.
func NewSub() *Sub {
	return &Sub{binaryElemwise{name: "Sub"}}
}

// Perform computes a - b.
func (op *Sub) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Sub(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
