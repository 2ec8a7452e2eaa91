package fgraph

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// Clone builds an isomorphic copy of the container with fresh Variables
// and Apply nodes, so a compilation pipeline can rewrite it without
// touching the caller's expression graph. Constants are shared (they are
// immutable). The returned mapping translates original Variables to their
// clones.
func (fg *FunctionGraph) Clone() (*FunctionGraph, map[*graph.Variable]*graph.Variable, error) {
	mapping := make(map[*graph.Variable]*graph.Variable, len(fg.variables))

	newInputs := make([]*graph.Variable, len(fg.inputs))
	for i, in := range fg.inputs {
		clone := graph.NewVariable(in.Type(), in.Name())
		mapping[in] = clone
		newInputs[i] = clone
	}

	lookup := func(v *graph.Variable) *graph.Variable {
		if v.IsConstant() {
			return v
		}
		return mapping[v]
	}

	for _, node := range fg.Toposort() {
		inputs := make([]*graph.Variable, len(node.Inputs()))
		for i, in := range node.Inputs() {
			inputs[i] = lookup(in)
		}
		clone, err := graph.MakeApply(node.Op(), inputs)
		if err != nil {
			// The original node type-checked, so its clone must too.
			return nil, nil, err
		}
		for i, out := range node.Outputs() {
			mapping[out] = clone.Outputs()[i]
		}
	}

	newOutputs := make([]*graph.Variable, len(fg.outputs))
	for i, out := range fg.outputs {
		newOutputs[i] = lookup(out)
	}

	clone, err := New(newInputs, newOutputs)
	if err != nil {
		return nil, nil, err
	}
	return clone, mapping, nil
}
