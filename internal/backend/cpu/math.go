package cpu

import (
	"math"

	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Exp computes the element-wise exponential. Float kinds only; integer
// tensors must be cast explicitly first.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
	case tensor.Float64:
		return unaryOp(x, math.Exp)
	default:
		return nil, errDType("exp", x.DType())
	}
}

// Log computes the element-wise natural logarithm. Float kinds only.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(v float32) float32 { return float32(math.Log(float64(v))) })
	case tensor.Float64:
		return unaryOp(x, math.Log)
	default:
		return nil, errDType("log", x.DType())
	}
}

// Sqrt computes the element-wise square root. Float kinds only.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
	case tensor.Float64:
		return unaryOp(x, math.Sqrt)
	default:
		return nil, errDType("sqrt", x.DType())
	}
}

// Pow computes element-wise exponentiation with broadcasting.
// Integer kinds go through float64 and truncate back.
func (cpu *CPUBackend) Pow(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(a, b, func(x, y float32) float32 {
			return float32(math.Pow(float64(x), float64(y)))
		})
	case tensor.Float64:
		return binaryOp(a, b, math.Pow)
	case tensor.Int32:
		return binaryOp(a, b, func(x, y int32) int32 {
			return int32(math.Pow(float64(x), float64(y)))
		})
	case tensor.Int64:
		return binaryOp(a, b, func(x, y int64) int64 {
			return int64(math.Pow(float64(x), float64(y)))
		})
	default:
		return nil, errDType("pow", a.DType())
	}
}
