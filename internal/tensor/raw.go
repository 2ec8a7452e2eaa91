package tensor

import (
	"fmt"
	"unsafe"
)

// Device identifies where a tensor's buffer lives.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	if d == CPU {
		return "CPU"
	}
	return "Unknown"
}

// RawTensor is the low-level tensor representation: a flat byte buffer plus
// shape, strides and runtime type information. Compiled functions move
// RawTensors between thunks; kernels never mutate their inputs, so a
// RawTensor may be shared freely between graph storage cells.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw allocates a zero-initialized RawTensor of the given shape and kind.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's element kind.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the buffer size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data exposes the underlying byte buffer without copying. Mutating it
// mutates the tensor.
func (r *RawTensor) Data() []byte {
	return r.data
}

// viewAs reinterprets the buffer as a []T without copying. The caller must
// have verified that the element kind matches T.
func viewAs[T DType](r *RawTensor) []T {
	n := r.NumElements()
	if n == 0 {
		return nil
	}
	//nolint:gosec // zero-copy reinterpretation, length bounded by NumElements
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), n)
}

func (r *RawTensor) mustBe(want DataType) {
	if r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
}

// AsFloat32 views the buffer as []float32. Panics on a dtype mismatch.
func (r *RawTensor) AsFloat32() []float32 {
	r.mustBe(Float32)
	return viewAs[float32](r)
}

// AsFloat64 views the buffer as []float64. Panics on a dtype mismatch.
func (r *RawTensor) AsFloat64() []float64 {
	r.mustBe(Float64)
	return viewAs[float64](r)
}

// AsInt32 views the buffer as []int32. Panics on a dtype mismatch.
func (r *RawTensor) AsInt32() []int32 {
	r.mustBe(Int32)
	return viewAs[int32](r)
}

// AsInt64 views the buffer as []int64. Panics on a dtype mismatch.
func (r *RawTensor) AsInt64() []int64 {
	r.mustBe(Int64)
	return viewAs[int64](r)
}

// Clone creates a deep copy of the RawTensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Float64At returns element i of the flattened tensor widened to float64.
func (r *RawTensor) Float64At(i int) float64 {
	switch r.dtype {
	case Float32:
		return float64(r.AsFloat32()[i])
	case Float64:
		return r.AsFloat64()[i]
	case Int32:
		return float64(r.AsInt32()[i])
	case Int64:
		return float64(r.AsInt64()[i])
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable description of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v on %s", r.dtype, r.shape, r.device)
}
