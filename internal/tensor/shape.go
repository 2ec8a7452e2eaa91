package tensor

import "fmt"

// Shape is the dimension list of a tensor. A zero-length Shape is a
// scalar.
type Shape []int

// NumElements returns the element count; 1 for a scalar.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects non-positive dimensions.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports element-wise equality.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}

// ComputeStrides returns row-major strides: stride[i] is the flat-index
// distance between neighbors along axis i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// BroadcastShapes merges two shapes under the standard broadcasting
// rules: axes are matched right to left, a missing or size-1 axis
// stretches to the other side's size, and anything else is an error.
// The boolean reports whether any stretching was needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	stretched := false

	dimAt := func(s Shape, i int) int {
		// i counts axes from the right.
		if i >= len(s) {
			return 1
		}
		return s[len(s)-1-i]
	}

	for i := 0; i < rank; i++ {
		da, db := dimAt(a, i), dimAt(b, i)
		switch {
		case da == db:
			out[rank-1-i] = da
		case da == 1:
			out[rank-1-i] = db
			stretched = true
		case db == 1:
			out[rank-1-i] = da
			stretched = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (axis %d: %d vs %d)",
				a, b, rank-1-i, da, db)
		}
	}
	return out, stretched, nil
}
