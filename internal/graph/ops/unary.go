package ops

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Neg is element-wise negation.
type Neg struct {
	unaryElemwise
}

// NewNeg creates a Neg operation.
func NewNeg() *Neg {
	return &Neg{unaryElemwise{name: "Neg"}}
}

// Perform computes -x.
func (op *Neg) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Neg(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}

// Exp is the element-wise exponential. Float kinds only.
type Exp struct {
	unaryElemwise
}

// NewExp creates an Exp operation.
func NewExp() *Exp {
	return &Exp{unaryElemwise{name: "Exp", floatOnly: true}}
}

// Perform computes e**x.
func (op *Exp) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Exp(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}

// Log is the element-wise natural logarithm. Float kinds only.
type Log struct {
	unaryElemwise
}

// NewLog creates a Log operation.
func NewLog() *Log {
	return &Log{unaryElemwise{name: "Log", floatOnly: true}}
}

// Perform computes ln(x).
func (op *Log) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Log(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}

// Sqrt is the element-wise square root. Float kinds only.
type Sqrt struct {
	unaryElemwise
}

// NewSqrt creates a Sqrt operation.
func NewSqrt() *Sqrt {
	return &Sqrt{unaryElemwise{name: "Sqrt", floatOnly: true}}
}

// Perform computes √x.
func (op *Sqrt) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	out, err := b.Sqrt(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{out}, nil
}
