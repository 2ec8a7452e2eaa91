package cpu

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/parallel"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Transpose permutes the axes of x. axes must be a permutation of
// [0, rank); a nil axes reverses all dimensions.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor, axes []int) (*tensor.RawTensor, error) {
	ndim := len(x.Shape())
	if axes == nil {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("transpose: got %d axes for rank-%d tensor", len(axes), ndim)
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			return nil, fmt.Errorf("transpose: axes %v is not a permutation of [0,%d)", axes, ndim)
		}
		seen[ax] = true
	}

	inShape := x.Shape()
	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		outShape[i] = inShape[ax]
	}

	out, err := tensor.NewRaw(outShape, x.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	// Per-output-axis stride into the input buffer.
	inStrides := inShape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	mapped := make([]int, ndim)
	for i, ax := range axes {
		mapped[i] = inStrides[ax]
	}

	elemSize := x.DType().Size()
	src, dst := x.Data(), out.Data()
	parallel.For(out.NumElements(), func(flat int) {
		rem, in := flat, 0
		for d := 0; d < ndim; d++ {
			idx := rem / outStrides[d]
			rem %= outStrides[d]
			in += idx * mapped[d]
		}
		copy(dst[flat*elemSize:(flat+1)*elemSize], src[in*elemSize:(in+1)*elemSize])
	})
	return out, nil
}

// Reshape returns a copy of x with a new shape holding the same elements
// in row-major order.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) (*tensor.RawTensor, error) {
	if newShape.NumElements() != x.NumElements() {
		return nil, fmt.Errorf("reshape: cannot reshape %v (%d elements) into %v (%d elements)",
			x.Shape(), x.NumElements(), newShape, newShape.NumElements())
	}
	out, err := tensor.NewRaw(newShape, x.DType(), x.Device())
	if err != nil {
		return nil, err
	}
	copy(out.Data(), x.Data())
	return out, nil
}
