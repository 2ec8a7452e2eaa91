package graph

import "github.com/HelloBroBro/pytensor/internal/tensor"

// Op is the polymorphic capability behind an Apply node: it validates
// input types and computes output types. Ops are stateless with respect to
// any single Apply instance; static configuration (an axis index, a target
// dtype) is fixed at construction and reflected in Signature.
//
// An Op additionally implements Performer, Lowerer, or both. The linker
// requires a Performer for every scheduled node, so an Op without one must
// be a Lowerer and is expanded by the mandatory lowering pass before
// linking.
type Op interface {
	// Name is the operation's bare name, e.g. "Add".
	Name() string

	// Signature identifies the operation including its static
	// configuration, e.g. "Sum{axis:1,keep:false}". Two Apply nodes with
	// equal Signatures and identical inputs compute the same outputs;
	// common-subexpression elimination and graph signatures rely on this.
	Signature() string

	// InferTypes computes output types from input types, or fails with a
	// *TypeError. It also checks arity.
	InferTypes(inputs []*TensorType) ([]*TensorType, error)
}

// Performer is an Op with a direct concrete implementation.
type Performer interface {
	Op

	// Perform computes concrete output values from concrete input values
	// using the given backend. It must not mutate the inputs.
	Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error)
}

// Lowerer is an Op that can rewrite itself into a composition of simpler
// Ops.
type Lowerer interface {
	Op

	// Lower builds replacement output Variables for the node from simpler
	// operations applied to node.Inputs(). The returned slice corresponds
	// position-for-position to node.Outputs().
	Lower(node *Apply) ([]*Variable, error)
}
