package cpu

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/parallel"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// MatMul computes vector/matrix products:
//
//	(k)·(k)     → scalar
//	(m,k)·(k,n) → (m,n)
//	(m,k)·(k)   → (m)
//	(k)·(k,n)   → (n)
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch a.DType() {
	case tensor.Float32:
		return matMul[float32](a, b)
	case tensor.Float64:
		return matMul[float64](a, b)
	case tensor.Int32:
		return matMul[int32](a, b)
	case tensor.Int64:
		return matMul[int64](a, b)
	default:
		return nil, errDType("matmul", a.DType())
	}
}

func matMul[T tensor.DType](a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("mixed dtypes %s and %s", a.DType(), b.DType())
	}
	// Promote vectors to matrices, dropping the synthetic axes afterwards.
	aShape, bShape := a.Shape(), b.Shape()
	m, k, dropRow := 1, 0, false
	switch len(aShape) {
	case 1:
		k = aShape[0]
		dropRow = true
	case 2:
		m, k = aShape[0], aShape[1]
	default:
		return nil, fmt.Errorf("matmul: left operand must be 1-D or 2-D, got %v", aShape)
	}

	k2, n, dropCol := 0, 1, false
	switch len(bShape) {
	case 1:
		k2 = bShape[0]
		dropCol = true
	case 2:
		k2, n = bShape[0], bShape[1]
	default:
		return nil, fmt.Errorf("matmul: right operand must be 1-D or 2-D, got %v", bShape)
	}

	if k != k2 {
		return nil, fmt.Errorf("matmul: inner dimensions do not match: %v vs %v", aShape, bShape)
	}

	outShape := tensor.Shape{}
	if !dropRow {
		outShape = append(outShape, m)
	}
	if !dropCol {
		outShape = append(outShape, n)
	}

	out, err := tensor.NewRaw(outShape, a.DType(), a.Device())
	if err != nil {
		return nil, err
	}

	ad := tensor.Elems[T](a)
	bd := tensor.Elems[T](b)
	od := tensor.Elems[T](out)

	parallel.For(m, func(i int) {
		for j := 0; j < n; j++ {
			var acc T
			for p := 0; p < k; p++ {
				acc += ad[i*k+p] * bd[p*n+j]
			}
			od[i*n+j] = acc
		}
	})
	return out, nil
}
