package ops

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// ZerosLike produces a zero tensor with its input's shape and element
// kind. Rewrite rules use it where a statically shaped zero constant
// cannot be formed, e.g. x - x.
type ZerosLike struct {
	unaryElemwise
}

// NewZerosLike creates a ZerosLike operation.
func NewZerosLike() *ZerosLike {
	return &ZerosLike{unaryElemwise{name: "ZerosLike"}}
}

// Perform allocates a zero-filled tensor shaped like the input.
func (op *ZerosLike) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	return []*tensor.RawTensor{tensor.Zeros(inputs[0].Shape(), inputs[0].DType())}, nil
}
