package ops

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Div is element-wise division with broadcasting.
type Div struct {
	binaryElemwise
}

// NewDiv creates a Div operation.
func NewDiv() *Div {
	return &Div{binaryElemwise{name: "Div"}}
}

// Perform computes a / b.
func (op *Div) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Div(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
