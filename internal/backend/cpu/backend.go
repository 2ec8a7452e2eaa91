// Package cpu implements the pure-Go CPU backend supplying the concrete
// kernels that compiled graph nodes execute.
package cpu

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// CPUBackend implements tensor.Backend with pure-Go kernels.
// Large elementwise loops are chunked across goroutines.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(a, b, func(x, y float32) float32 { return x + y })
	case tensor.Float64:
		return binaryOp(a, b, func(x, y float64) float64 { return x + y })
	case tensor.Int32:
		return binaryOp(a, b, func(x, y int32) int32 { return x + y })
	case tensor.Int64:
		return binaryOp(a, b, func(x, y int64) int64 { return x + y })
	default:
		return nil, errDType("add", a.DType())
	}
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(a, b, func(x, y float32) float32 { return x - y })
	case tensor.Float64:
		return binaryOp(a, b, func(x, y float64) float64 { return x - y })
	case tensor.Int32:
		return binaryOp(a, b, func(x, y int32) int32 { return x - y })
	case tensor.Int64:
		return binaryOp(a, b, func(x, y int64) int64 { return x - y })
	default:
		return nil, errDType("sub", a.DType())
	}
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(a, b, func(x, y float32) float32 { return x * y })
	case tensor.Float64:
		return binaryOp(a, b, func(x, y float64) float64 { return x * y })
	case tensor.Int32:
		return binaryOp(a, b, func(x, y int32) int32 { return x * y })
	case tensor.Int64:
		return binaryOp(a, b, func(x, y int64) int64 { return x * y })
	default:
		return nil, errDType("mul", a.DType())
	}
}

// Div performs element-wise division with broadcasting.
// Integer division truncates toward zero, as in Go.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(a, b, func(x, y float32) float32 { return x / y })
	case tensor.Float64:
		return binaryOp(a, b, func(x, y float64) float64 { return x / y })
	case tensor.Int32:
		return binaryOp(a, b, func(x, y int32) int32 { return x / y })
	case tensor.Int64:
		return binaryOp(a, b, func(x, y int64) int64 { return x / y })
	default:
		return nil, errDType("div", a.DType())
	}
}

// Neg performs element-wise negation.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(v float32) float32 { return -v })
	case tensor.Float64:
		return unaryOp(x, func(v float64) float64 { return -v })
	case tensor.Int32:
		return unaryOp(x, func(v int32) int32 { return -v })
	case tensor.Int64:
		return unaryOp(x, func(v int64) int64 { return -v })
	default:
		return nil, errDType("neg", x.DType())
	}
}
