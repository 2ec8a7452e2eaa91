// Copyright 2026 The PyTensor Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public API for concrete tensor values.
//
// It re-exports the value types that compiled functions consume and
// produce:
//   - RawTensor: a dense n-dimensional array of a fixed data type
//   - Shape, DataType, Device: core type definitions
//   - FromSlice, Scalar, Zeros, Full: creation helpers
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
package tensor

import (
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// DType is the compile-time constraint for element types.
// Supported types: float32, float64, int32, int64.
type DType = tensor.DType

// DataType identifies the element type of a tensor at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Device identifies where tensor data lives.
type Device = tensor.Device

// CPU is the only device the reference backend supports.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} is a 3D tensor with dimensions 2x3x4.
type Shape = tensor.Shape

// RawTensor is a dense n-dimensional array: contiguous bytes plus shape,
// strides, data type and device.
type RawTensor = tensor.RawTensor

// Backend is the compute interface operations execute against.
type Backend = tensor.Backend

// FromSlice builds a tensor from a typed slice and a shape. The slice
// length must match the shape's element count.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Scalar builds a rank-0 tensor holding a single value.
func Scalar[T DType](value T) *RawTensor {
	return tensor.Scalar(value)
}

// Zeros builds a zero-filled tensor of the given shape and data type.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Full builds a tensor of the given shape with every element set to value.
func Full[T DType](shape Shape, value T) *RawTensor {
	return tensor.Full(shape, value)
}

// BroadcastShapes applies the standard broadcasting rules to a pair of
// shapes. It returns the broadcast result shape and whether any
// broadcasting was needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
