package cpu

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Sum reduces all elements to a 0-D scalar of the same dtype.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch x.DType() {
	case tensor.Float32:
		return sumAll[float32](x)
	case tensor.Float64:
		return sumAll[float64](x)
	case tensor.Int32:
		return sumAll[int32](x)
	case tensor.Int64:
		return sumAll[int64](x)
	default:
		return nil, errDType("sum", x.DType())
	}
}

// SumDim reduces along one dimension. With keepDim the reduced axis stays
// as size 1, otherwise it is removed.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) (*tensor.RawTensor, error) {
	switch x.DType() {
	case tensor.Float32:
		return sumDim[float32](x, dim, keepDim)
	case tensor.Float64:
		return sumDim[float64](x, dim, keepDim)
	case tensor.Int32:
		return sumDim[int32](x, dim, keepDim)
	case tensor.Int64:
		return sumDim[int64](x, dim, keepDim)
	default:
		return nil, errDType("sum", x.DType())
	}
}

func sumAll[T tensor.DType](x *tensor.RawTensor) (*tensor.RawTensor, error) {
	var acc T
	for _, v := range tensor.Elems[T](x) {
		acc += v
	}
	return tensor.Scalar(acc), nil
}

func sumDim[T tensor.DType](x *tensor.RawTensor, dim int, keepDim bool) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		return nil, fmt.Errorf("sum: dimension %d out of range for shape %v", dim, shape)
	}

	outShape := make(tensor.Shape, 0, len(shape))
	for i, d := range shape {
		switch {
		case i != dim:
			outShape = append(outShape, d)
		case keepDim:
			outShape = append(outShape, 1)
		}
	}

	out, err := tensor.NewRaw(outShape, x.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	// Split the input into (outer, reduced, inner) blocks around dim.
	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	n := shape[dim]

	xd := tensor.Elems[T](x)
	od := tensor.Elems[T](out)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var acc T
			base := o * n * inner
			for r := 0; r < n; r++ {
				acc += xd[base+r*inner+in]
			}
			od[o*inner+in] = acc
		}
	}
	return out, nil
}
