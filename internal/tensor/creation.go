package tensor

import "fmt"

// FromSlice creates a RawTensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	t, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	copy(typedData[T](raw), data)
	return raw, nil
}

// Scalar creates a 0-D tensor holding a single value.
func Scalar[T DType](value T) *RawTensor {
	raw, err := FromSlice([]T{value}, Shape{})
	if err != nil {
		panic(err) // A 0-D shape is always valid.
	}
	return raw
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		panic(err)
	}
	// Data is already zero-initialized by make()
	return raw
}

// Full creates a tensor filled with a specific value.
func Full[T DType](shape Shape, value T) *RawTensor {
	var dummy T
	raw := Zeros(shape, inferDataType(dummy))
	data := typedData[T](raw)
	for i := range data {
		data[i] = value
	}
	return raw
}

// Elems returns the tensor's elements as a typed slice.
// The tensor's dtype must match T; the slice aliases the tensor's memory.
func Elems[T DType](r *RawTensor) []T {
	return typedData[T](r)
}

// typedData returns the tensor's data as a typed slice.
// The tensor's dtype must match T.
func typedData[T DType](r *RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case int32:
		return any(r.AsInt32()).([]T)
	case int64:
		return any(r.AsInt64()).([]T)
	default:
		panic("unsupported type")
	}
}
