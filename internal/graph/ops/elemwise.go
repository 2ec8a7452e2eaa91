// Package ops implements the operation set of the symbolic graph: type
// inference plus, per operation, a direct perform behavior or a lowering
// into simpler operations.
package ops

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// Elemwise marks operations that compute each output element from the
// input elements at the same (broadcast) position. The fusion pass merges
// chains of Elemwise nodes into a single Composite node.
type Elemwise interface {
	graph.Op
	elemwise()
}

// binaryElemwise supplies Name/Signature/InferTypes for two-input
// elementwise operations. The output type is the unification of the input
// types: same element kind, ranks merged, an axis staying broadcastable
// only when it is broadcastable on both sides.
type binaryElemwise struct {
	name string
}

func (o binaryElemwise) Name() string      { return o.name }
func (o binaryElemwise) Signature() string { return o.name }
func (o binaryElemwise) elemwise()         {}

func (o binaryElemwise) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != 2 {
		return nil, graph.NewTypeError(o.name, "expected 2 inputs, got %d", len(inputs))
	}
	a, b := padRanks(inputs[0], inputs[1])
	out, err := a.Unify(b)
	if err != nil {
		return nil, graph.NewTypeError(o.name, "%v", err)
	}
	return []*graph.TensorType{out}, nil
}

// padRanks left-pads the lower-rank type with broadcastable axes, matching
// the runtime broadcasting rule that treats missing leading axes as size 1.
func padRanks(a, b *graph.TensorType) (*graph.TensorType, *graph.TensorType) {
	if !a.Ranked() || !b.Ranked() || a.Rank() == b.Rank() {
		return a, b
	}
	pad := func(t *graph.TensorType, rank int) *graph.TensorType {
		pattern := make([]bool, rank)
		for i := 0; i < rank-t.Rank(); i++ {
			pattern[i] = true
		}
		copy(pattern[rank-t.Rank():], t.Broadcastable())
		return graph.NewTensorType(t.DType(), pattern)
	}
	if a.Rank() < b.Rank() {
		return pad(a, b.Rank()), b
	}
	return a, pad(b, a.Rank())
}

// unaryElemwise supplies Name/Signature/InferTypes for one-input
// elementwise operations. With floatOnly set, integer element kinds are
// rejected; an explicit Cast is required instead.
type unaryElemwise struct {
	name      string
	floatOnly bool
}

func (o unaryElemwise) Name() string      { return o.name }
func (o unaryElemwise) Signature() string { return o.name }
func (o unaryElemwise) elemwise()         {}

func (o unaryElemwise) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != 1 {
		return nil, graph.NewTypeError(o.name, "expected 1 input, got %d", len(inputs))
	}
	if o.floatOnly && !inputs[0].DType().IsFloat() {
		return nil, graph.NewTypeError(o.name, "requires a float element kind, got %s", inputs[0].DType())
	}
	return []*graph.TensorType{inputs[0]}, nil
}
