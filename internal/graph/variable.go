package graph

import (
	"fmt"
	"sync/atomic"

	"github.com/HelloBroBro/pytensor/internal/tensor"
)

var nextID atomic.Int64

func newID() int64 {
	return nextID.Add(1)
}

// Variable is a typed symbolic value slot. It is either a graph input
// (no owner, no value), the output of an Apply node (owner set), or a
// constant (no owner, value set).
//
// Variables are shared: every Apply node that consumes one holds the same
// pointer. Reverse lookup from a Variable to its consumers is kept by the
// FunctionGraph client index, not on the Variable itself.
type Variable struct {
	id    int64
	typ   *TensorType
	name  string
	owner *Apply
	index int // position among owner's outputs
	value *tensor.RawTensor
}

// NewVariable creates a free (input) Variable of the given type.
func NewVariable(typ *TensorType, name string) *Variable {
	return &Variable{
		id:   newID(),
		typ:  typ,
		name: name,
	}
}

// NewConstant creates a Variable carrying a fixed concrete value. Its type
// is fully specific: every size-1 axis of the value is marked
// broadcastable.
func NewConstant(value *tensor.RawTensor, name string) *Variable {
	broadcastable := make([]bool, len(value.Shape()))
	for i, d := range value.Shape() {
		broadcastable[i] = d == 1
	}
	return &Variable{
		id:    newID(),
		typ:   NewTensorType(value.DType(), broadcastable),
		name:  name,
		value: value,
	}
}

// ID returns the process-unique identity of the Variable.
func (v *Variable) ID() int64 {
	return v.id
}

// Type returns the Variable's symbolic type.
func (v *Variable) Type() *TensorType {
	return v.typ
}

// Name returns the optional human-readable name.
func (v *Variable) Name() string {
	return v.name
}

// Owner returns the Apply node producing this Variable, or nil for
// inputs and constants.
func (v *Variable) Owner() *Apply {
	return v.owner
}

// OwnerIndex returns this Variable's position among its owner's outputs.
func (v *Variable) OwnerIndex() int {
	return v.index
}

// IsConstant reports whether the Variable carries a fixed value.
func (v *Variable) IsConstant() bool {
	return v.value != nil
}

// Value returns the constant's concrete value, or nil.
func (v *Variable) Value() *tensor.RawTensor {
	return v.value
}

// String renders the name when set, otherwise a positional placeholder.
func (v *Variable) String() string {
	if v.name != "" {
		return v.name
	}
	if v.value != nil {
		return fmt.Sprintf("Constant{%s}", v.typ)
	}
	return fmt.Sprintf("<%s #%d>", v.typ, v.id)
}
