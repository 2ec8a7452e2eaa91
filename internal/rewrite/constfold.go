package rewrite

import (
	"github.com/pkg/errors"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// ConstantFolding evaluates nodes whose inputs are all constants at
// compile time and replaces their outputs with the resulting constants.
func ConstantFolding(backend tensor.Backend) Rewriter {
	return Local(constFold{backend: backend})
}

type constFold struct {
	backend tensor.Backend
}

func (constFold) Name() string { return "constant_folding" }

func (r constFold) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	performer, ok := node.Op().(graph.Performer)
	if !ok {
		return nil, nil
	}
	values := make([]*tensor.RawTensor, len(node.Inputs()))
	for i, in := range node.Inputs() {
		if !in.IsConstant() {
			return nil, nil
		}
		values[i] = in.Value()
	}

	results, err := performer.Perform(r.backend, values)
	if err != nil {
		return nil, errors.Wrapf(err, "folding %s", node)
	}
	repls := make([]*graph.Variable, len(results))
	for i, res := range results {
		repls[i] = graph.NewConstant(res, "")
	}
	return repls, nil
}
