package rewrite

import (
	"github.com/pkg/errors"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// Lowering expands every node whose operation has no direct perform
// behavior into its composition of simpler operations. It runs in every
// compilation mode: the linker requires a perform behavior per scheduled
// node.
func Lowering() Rewriter {
	return Local(lowerRule{})
}

type lowerRule struct{}

func (lowerRule) Name() string { return "lowering" }

func (lowerRule) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	if _, ok := node.Op().(graph.Performer); ok {
		return nil, nil
	}
	lowerer, ok := node.Op().(graph.Lowerer)
	if !ok {
		// The linker reports this as a compile error with the node
		// identity; nothing to do here.
		return nil, nil
	}
	repls, err := lowerer.Lower(node)
	if err != nil {
		return nil, errors.Wrapf(err, "lowering %s", node)
	}
	if len(repls) != len(node.Outputs()) {
		return nil, errors.Errorf("lowering %s produced %d outputs, expected %d",
			node, len(repls), len(node.Outputs()))
	}
	return repls, nil
}
