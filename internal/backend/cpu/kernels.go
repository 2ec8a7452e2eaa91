package cpu

import (
	"fmt"

	"github.com/HelloBroBro/pytensor/internal/parallel"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// errDType reports an element kind a kernel cannot handle.
func errDType(op string, dt tensor.DataType) error {
	return fmt.Errorf("%s: unsupported dtype %s", op, dt)
}

// broadcastIndexer maps flat indices of a broadcast output back to flat
// indices of one input. Axes of size 1 in the input (and axes missing on
// the left) get stride 0, so every output position along them reads the
// same input element.
type broadcastIndexer struct {
	outStrides []int
	inStrides  []int
}

func newBroadcastIndexer(in, out tensor.Shape) broadcastIndexer {
	inStrides := in.ComputeStrides()
	mapped := make([]int, len(out))
	offset := len(out) - len(in)
	for i := range out {
		j := i - offset
		if j < 0 || in[j] == 1 && out[i] != 1 {
			mapped[i] = 0
		} else {
			mapped[i] = inStrides[j]
		}
	}
	return broadcastIndexer{
		outStrides: out.ComputeStrides(),
		inStrides:  mapped,
	}
}

// at translates a flat output index into the corresponding flat input index.
func (ix broadcastIndexer) at(flat int) int {
	in := 0
	for d, stride := range ix.outStrides {
		if stride == 0 {
			continue
		}
		idx := flat / stride
		flat %= stride
		in += idx * ix.inStrides[d]
	}
	return in
}

// binaryOp applies f element-wise over a and b with broadcasting.
// Inputs are never mutated.
func binaryOp[T tensor.DType](a, b *tensor.RawTensor, f func(x, y T) T) (*tensor.RawTensor, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("mixed dtypes %s and %s", a.DType(), b.DType())
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	out, err := tensor.NewRaw(outShape, a.DType(), a.Device())
	if err != nil {
		return nil, err
	}

	ad := tensor.Elems[T](a)
	bd := tensor.Elems[T](b)
	od := tensor.Elems[T](out)

	if !needsBroadcast {
		parallel.For(len(od), func(i int) {
			od[i] = f(ad[i], bd[i])
		})
		return out, nil
	}

	ai := newBroadcastIndexer(a.Shape(), outShape)
	bi := newBroadcastIndexer(b.Shape(), outShape)
	parallel.For(len(od), func(i int) {
		od[i] = f(ad[ai.at(i)], bd[bi.at(i)])
	})
	return out, nil
}

// unaryOp applies f element-wise over x.
func unaryOp[T tensor.DType](x *tensor.RawTensor, f func(v T) T) (*tensor.RawTensor, error) {
	out, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		return nil, err
	}
	xd := tensor.Elems[T](x)
	od := tensor.Elems[T](out)
	parallel.For(len(od), func(i int) {
		od[i] = f(xd[i])
	})
	return out, nil
}
