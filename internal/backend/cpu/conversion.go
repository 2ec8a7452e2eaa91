package cpu

import (
	"github.com/HelloBroBro/pytensor/internal/parallel"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Cast converts x to another element kind, element by element.
// Float-to-int conversion truncates toward zero, as in Go.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if x.DType() == dtype {
		return x.Clone(), nil
	}

	out, err := tensor.NewRaw(x.Shape(), dtype, x.Device())
	if err != nil {
		return nil, err
	}

	switch dtype {
	case tensor.Float32:
		castInto(x, tensor.Elems[float32](out))
	case tensor.Float64:
		castInto(x, tensor.Elems[float64](out))
	case tensor.Int32:
		castInto(x, tensor.Elems[int32](out))
	case tensor.Int64:
		castInto(x, tensor.Elems[int64](out))
	default:
		return nil, errDType("cast", dtype)
	}
	return out, nil
}

func castInto[T tensor.DType](x *tensor.RawTensor, out []T) {
	switch x.DType() {
	case tensor.Float32:
		convert(tensor.Elems[float32](x), out)
	case tensor.Float64:
		convert(tensor.Elems[float64](x), out)
	case tensor.Int32:
		convert(tensor.Elems[int32](x), out)
	case tensor.Int64:
		convert(tensor.Elems[int64](x), out)
	}
}

func convert[S, T tensor.DType](src []S, dst []T) {
	parallel.For(len(src), func(i int) {
		dst[i] = T(src[i])
	})
}
