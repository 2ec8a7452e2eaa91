package graph

import (
	"fmt"
	"strings"
)

// Apply is an operation instance: one Op applied to an ordered sequence of
// input Variables, producing an ordered sequence of freshly allocated
// output Variables owned by the node.
type Apply struct {
	id      int64
	op      Op
	inputs  []*Variable
	outputs []*Variable
}

// MakeApply validates the inputs against op's type-inference contract and
// allocates the node together with its output Variables. A nil input or a
// rejected type combination fails with a *TypeError; nothing is silently
// coerced.
func MakeApply(op Op, inputs []*Variable) (*Apply, error) {
	inTypes := make([]*TensorType, len(inputs))
	for i, in := range inputs {
		if in == nil {
			return nil, typeErrorf(op.Name(), "input %d is nil", i)
		}
		inTypes[i] = in.Type()
	}

	outTypes, err := op.InferTypes(inTypes)
	if err != nil {
		return nil, err
	}

	node := &Apply{
		id:     newID(),
		op:     op,
		inputs: append([]*Variable(nil), inputs...),
	}
	node.outputs = make([]*Variable, len(outTypes))
	for i, typ := range outTypes {
		node.outputs[i] = &Variable{
			id:    newID(),
			typ:   typ,
			owner: node,
			index: i,
		}
	}
	return node, nil
}

// ID returns the process-unique identity of the node.
func (a *Apply) ID() int64 {
	return a.id
}

// Op returns the operation this node instantiates.
func (a *Apply) Op() Op {
	return a.op
}

// Inputs returns the node's input Variables. The slice is shared; callers
// must not mutate it directly (FunctionGraph.Replace does, under its own
// bookkeeping).
func (a *Apply) Inputs() []*Variable {
	return a.inputs
}

// Outputs returns the node's output Variables.
func (a *Apply) Outputs() []*Variable {
	return a.outputs
}

// Output returns the single output of a one-output node.
// Panics if the node has a different number of outputs.
func (a *Apply) Output() *Variable {
	if len(a.outputs) != 1 {
		panic(fmt.Sprintf("%s has %d outputs, not 1", a.op.Name(), len(a.outputs)))
	}
	return a.outputs[0]
}

// SetInput redirects input slot i to v. Only the FunctionGraph may call
// this: it keeps the client index consistent and re-checks acyclicity.
func (a *Apply) SetInput(i int, v *Variable) {
	a.inputs[i] = v
}

// String renders e.g. "Add(x, y)".
func (a *Apply) String() string {
	names := make([]string, len(a.inputs))
	for i, in := range a.inputs {
		names[i] = in.String()
	}
	return a.op.Name() + "(" + strings.Join(names, ", ") + ")"
}
