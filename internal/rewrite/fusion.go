package rewrite

import (
	"github.com/pkg/errors"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/graph/ops"
)

// ElemwiseFusion merges chains of elementwise nodes into single Composite
// nodes so the linker schedules one thunk for the whole chain. Skipped in
// fast-compile mode.
func ElemwiseFusion() Rewriter {
	return fusionPass{}
}

type fusionPass struct{}

func (fusionPass) Name() string { return "elemwise_fusion" }

func (fusionPass) Apply(fg *fgraph.FunctionGraph) (bool, error) {
	changed := false
	// Walk the schedule backwards so each chain is fused from its sink.
	order := fg.Toposort()
	for i := len(order) - 1; i >= 0; i-- {
		sink := order[i]
		if !fg.HasApply(sink) {
			continue // Absorbed into an earlier Composite.
		}
		if !fusable(sink) {
			continue
		}
		group := collectChain(fg, sink)
		if len(group) < 2 {
			continue
		}
		if err := fuse(fg, sink, group); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// fusable reports whether node may join a fused chain: a single-output
// elementwise operation with a direct perform behavior, and not already a
// Composite.
func fusable(node *graph.Apply) bool {
	if _, ok := node.Op().(*ops.Composite); ok {
		return false
	}
	if _, ok := node.Op().(ops.Elemwise); !ok {
		return false
	}
	if _, ok := node.Op().(graph.Performer); !ok {
		return false
	}
	return len(node.Outputs()) == 1
}

// collectChain gathers sink plus every fusable ancestor whose only client
// is inside the chain and whose output is not itself a declared output.
func collectChain(fg *fgraph.FunctionGraph, sink *graph.Apply) map[*graph.Apply]bool {
	group := map[*graph.Apply]bool{sink: true}
	var grow func(node *graph.Apply)
	grow = func(node *graph.Apply) {
		for _, in := range node.Inputs() {
			owner := in.Owner()
			if owner == nil || group[owner] || !fg.HasApply(owner) || !fusable(owner) {
				continue
			}
			clients := fg.Clients(in)
			if len(clients) != 1 || !group[clients[0].Node] {
				continue
			}
			if fg.IsOutput(in) {
				continue
			}
			group[owner] = true
			grow(owner)
		}
	}
	grow(sink)
	return group
}

// fuse rebuilds the group as an inner graph over placeholder inputs and
// replaces the sink's output with a single Composite node.
func fuse(fg *fgraph.FunctionGraph, sink *graph.Apply, group map[*graph.Apply]bool) error {
	// Fringe variables: consumed by the group but produced outside it.
	var outerInputs []*graph.Variable
	innerOf := make(map[*graph.Variable]*graph.Variable)

	var build func(node *graph.Apply) error
	build = func(node *graph.Apply) error {
		inner := make([]*graph.Variable, len(node.Inputs()))
		for i, in := range node.Inputs() {
			if iv, ok := innerOf[in]; ok {
				inner[i] = iv
				continue
			}
			owner := in.Owner()
			if owner != nil && group[owner] {
				if err := build(owner); err != nil {
					return err
				}
				inner[i] = innerOf[in]
				continue
			}
			if in.IsConstant() {
				innerOf[in] = in
				inner[i] = in
				continue
			}
			placeholder := graph.NewVariable(in.Type(), in.Name())
			innerOf[in] = placeholder
			outerInputs = append(outerInputs, in)
			inner[i] = placeholder
		}
		clone, err := graph.MakeApply(node.Op(), inner)
		if err != nil {
			return err
		}
		innerOf[node.Output()] = clone.Output()
		return nil
	}
	if err := build(sink); err != nil {
		return errors.Wrapf(err, "fusing chain at %s", sink)
	}

	innerInputs := make([]*graph.Variable, len(outerInputs))
	for i, outer := range outerInputs {
		innerInputs[i] = innerOf[outer]
	}
	composite, err := ops.NewComposite(innerInputs, []*graph.Variable{innerOf[sink.Output()]})
	if err != nil {
		return errors.Wrapf(err, "fusing chain at %s", sink)
	}
	fused, err := graph.MakeApply(composite, outerInputs)
	if err != nil {
		return errors.Wrapf(err, "fusing chain at %s", sink)
	}
	return fg.Replace(sink.Output(), fused.Output(), fgraph.Permissive)
}
