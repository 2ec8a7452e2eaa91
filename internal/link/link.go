// Package link turns a rewritten function graph into an executable
// CompiledFunction: dead code is dropped, the remaining nodes are
// scheduled in dependency order, and each scheduled node is bound to its
// operation's perform behavior.
package link

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// CompileError reports a node that cannot be linked: after every lowering
// pass it still has no perform behavior. Fatal to the compilation attempt.
type CompileError struct {
	Node string
	Msg  string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at %s: %s", e.Node, e.Msg)
}

// thunk is one scheduled, bound unit of computation.
type thunk struct {
	node    *graph.Apply
	perform graph.Performer
}

// CompiledFunction is the immutable executable artifact: an ordered thunk
// schedule plus the input/output Variable identities of the container it
// was linked from. Invocations allocate private storage, so a single
// CompiledFunction may be called from many goroutines at once.
type CompiledFunction struct {
	backend  tensor.Backend
	schedule []thunk
	inputs   []*graph.Variable
	outputs  []*graph.Variable
	inputSet map[*graph.Variable]bool
}

// Link compiles fg against the given backend. The container is read (and
// pruned of dead nodes) but the linker never rewrites it; lowering is the
// rewrite engine's job and a node left without a perform behavior is a
// *CompileError.
func Link(fg *fgraph.FunctionGraph, backend tensor.Backend) (*CompiledFunction, error) {
	fg.Prune()

	order := fg.Toposort()
	schedule := make([]thunk, len(order))
	for i, node := range order {
		performer, ok := node.Op().(graph.Performer)
		if !ok {
			return nil, &CompileError{
				Node: node.String(),
				Msg:  fmt.Sprintf("operation %s has no perform behavior after lowering", node.Op().Name()),
			}
		}
		schedule[i] = thunk{node: node, perform: performer}
	}

	inputSet := make(map[*graph.Variable]bool, len(fg.Inputs()))
	for _, in := range fg.Inputs() {
		inputSet[in] = true
	}

	return &CompiledFunction{
		backend:  backend,
		schedule: schedule,
		inputs:   fg.Inputs(),
		outputs:  fg.Outputs(),
		inputSet: inputSet,
	}, nil
}

// NumThunks returns the length of the bound schedule.
func (f *CompiledFunction) NumThunks() int {
	return len(f.schedule)
}

// Inputs returns the input Variables the schedule was bound against.
func (f *CompiledFunction) Inputs() []*graph.Variable {
	return f.inputs
}

// Call executes the schedule on concrete input values, positionally
// matching the declared inputs. Every value is validated against its
// input's type before any thunk runs; a mismatch fails the call with a
// *graph.ShapeError and no partial effects.
func (f *CompiledFunction) Call(values ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(values) != len(f.inputs) {
		return nil, &graph.ShapeError{
			Msg: fmt.Sprintf("expected %d input values, got %d", len(f.inputs), len(values)),
		}
	}
	for i, in := range f.inputs {
		if err := in.Type().CheckValue(values[i]); err != nil {
			if serr, ok := err.(*graph.ShapeError); ok {
				return nil, &graph.ShapeError{Variable: in, Msg: serr.Msg}
			}
			return nil, err
		}
	}

	storage := make(map[*graph.Variable]*tensor.RawTensor, len(f.schedule)+len(values))
	for i, in := range f.inputs {
		storage[in] = values[i]
	}

	for _, t := range f.schedule {
		args := make([]*tensor.RawTensor, len(t.node.Inputs()))
		for i, in := range t.node.Inputs() {
			if in.IsConstant() {
				args[i] = in.Value()
				continue
			}
			v, ok := storage[in]
			if !ok {
				return nil, errors.Errorf("no value for %s while executing %s", in, t.node)
			}
			args[i] = v
		}
		results, err := t.perform.Perform(f.backend, args)
		if err != nil {
			return nil, errors.Wrapf(err, "executing %s", t.node)
		}
		if len(results) != len(t.node.Outputs()) {
			return nil, errors.Errorf("%s produced %d values, expected %d",
				t.node, len(results), len(t.node.Outputs()))
		}
		for i, out := range t.node.Outputs() {
			if f.inputSet[out] {
				continue // A bound interior input keeps its supplied value.
			}
			storage[out] = results[i]
		}
	}

	outs := make([]*tensor.RawTensor, len(f.outputs))
	for i, out := range f.outputs {
		switch {
		case out.IsConstant():
			outs[i] = out.Value()
		default:
			v, ok := storage[out]
			if !ok {
				return nil, errors.Errorf("no value computed for output %s", out)
			}
			outs[i] = v
		}
	}
	return outs, nil
}
