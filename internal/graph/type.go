// Package graph defines the symbolic intermediate representation: tensor
// types, variables, apply nodes and the operation contract.
package graph

import (
	"fmt"
	"strings"

	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// TensorType describes the static type of a symbolic value: an element
// kind plus a per-axis broadcastable pattern. An axis marked broadcastable
// is statically known to have size 1 and may broadcast against larger
// sizes at call time; an unmarked axis may have any size.
//
// A TensorType may also have unknown rank, in which case it places no
// constraint on the number of axes. TensorTypes are immutable.
type TensorType struct {
	dtype         tensor.DataType
	broadcastable []bool
	ranked        bool
}

// NewTensorType creates a type with a known rank given by the length of
// the broadcastable pattern.
func NewTensorType(dtype tensor.DataType, broadcastable []bool) *TensorType {
	return &TensorType{
		dtype:         dtype,
		ranked:        true,
		broadcastable: append([]bool(nil), broadcastable...),
	}
}

// NewAnyRankType creates a type constraining only the element kind.
func NewAnyRankType(dtype tensor.DataType) *TensorType {
	return &TensorType{dtype: dtype}
}

// ScalarType is the 0-D type of the given element kind.
func ScalarType(dtype tensor.DataType) *TensorType {
	return NewTensorType(dtype, nil)
}

// VectorType is a 1-D type with an arbitrary-size axis.
func VectorType(dtype tensor.DataType) *TensorType {
	return NewTensorType(dtype, []bool{false})
}

// MatrixType is a 2-D type with arbitrary-size axes.
func MatrixType(dtype tensor.DataType) *TensorType {
	return NewTensorType(dtype, []bool{false, false})
}

// RowType is a 2-D type whose first axis is broadcastable (a 1×n row).
func RowType(dtype tensor.DataType) *TensorType {
	return NewTensorType(dtype, []bool{true, false})
}

// DType returns the element kind.
func (t *TensorType) DType() tensor.DataType {
	return t.dtype
}

// Ranked reports whether the number of axes is known.
func (t *TensorType) Ranked() bool {
	return t.ranked
}

// Rank returns the number of axes. Only meaningful when Ranked.
func (t *TensorType) Rank() int {
	return len(t.broadcastable)
}

// Broadcastable returns the per-axis broadcastable pattern.
func (t *TensorType) Broadcastable() []bool {
	return append([]bool(nil), t.broadcastable...)
}

// Equal reports exact equality of element kind, rankedness and pattern.
func (t *TensorType) Equal(other *TensorType) bool {
	if t.dtype != other.dtype || t.ranked != other.ranked {
		return false
	}
	if !t.ranked {
		return true
	}
	if len(t.broadcastable) != len(other.broadcastable) {
		return false
	}
	for i := range t.broadcastable {
		if t.broadcastable[i] != other.broadcastable[i] {
			return false
		}
	}
	return true
}

// Unify merges two types into the most specific type both values could
// have. Element kinds must match exactly: the type system performs no
// numeric promotion, an explicit Cast node does that. A known rank wins
// over an unknown one; two known ranks must agree. Per axis, broadcastable
// unifies with arbitrary only by widening to arbitrary.
func (t *TensorType) Unify(other *TensorType) (*TensorType, error) {
	if t.dtype != other.dtype {
		return nil, typeErrorf("", "element kinds do not match: %s vs %s", t.dtype, other.dtype)
	}
	if !t.ranked {
		return other, nil
	}
	if !other.ranked {
		return t, nil
	}
	if len(t.broadcastable) != len(other.broadcastable) {
		return nil, typeErrorf("", "ranks do not match: %d vs %d", len(t.broadcastable), len(other.broadcastable))
	}
	merged := make([]bool, len(t.broadcastable))
	for i := range merged {
		merged[i] = t.broadcastable[i] && other.broadcastable[i]
	}
	return NewTensorType(t.dtype, merged), nil
}

// CompatibleWith reports whether Unify would succeed.
func (t *TensorType) CompatibleWith(other *TensorType) bool {
	_, err := t.Unify(other)
	return err == nil
}

// WidensTo reports whether a value of type t is also a value of type
// other: other may forget broadcastable marks but never add them.
// Used by permissive-mode replacement.
func (t *TensorType) WidensTo(other *TensorType) bool {
	u, err := t.Unify(other)
	if err != nil {
		return false
	}
	return u.Equal(other)
}

// CheckValue verifies a concrete tensor against the type: matching element
// kind, matching rank when known, and concrete size 1 on every
// broadcastable axis.
func (t *TensorType) CheckValue(v *tensor.RawTensor) error {
	if v.DType() != t.dtype {
		return &ShapeError{Msg: fmt.Sprintf("value has dtype %s, type requires %s", v.DType(), t.dtype)}
	}
	if !t.ranked {
		return nil
	}
	shape := v.Shape()
	if len(shape) != len(t.broadcastable) {
		return &ShapeError{Msg: fmt.Sprintf("value has rank %d, type requires rank %d", len(shape), len(t.broadcastable))}
	}
	for i, b := range t.broadcastable {
		if b && shape[i] != 1 {
			return &ShapeError{Msg: fmt.Sprintf("axis %d is broadcastable but value has size %d", i, shape[i])}
		}
	}
	return nil
}

// String renders e.g. "float64()", "float32(1,?)", "int64(any)".
func (t *TensorType) String() string {
	var sb strings.Builder
	sb.WriteString(t.dtype.String())
	sb.WriteByte('(')
	if !t.ranked {
		sb.WriteString("any")
	} else {
		for i, b := range t.broadcastable {
			if i > 0 {
				sb.WriteByte(',')
			}
			if b {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('?')
			}
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
