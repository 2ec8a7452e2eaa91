package ops

import (
	"fmt"
	"strings"

	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Composite is a fused chain of elementwise operations produced by the
// fusion pass. It carries a private inner graph (placeholder inputs, a
// dependency-ordered node list, and output variables) and performs by
// executing that inner schedule as a single thunk, so the outer graph
// materializes no intermediate between the fused nodes.
type Composite struct {
	inputs   []*graph.Variable
	outputs  []*graph.Variable
	schedule []*graph.Apply
	sig      string
}

// NewComposite builds a Composite from an inner graph given by its
// placeholder inputs and outputs. Every inner operation must be a
// Performer and elementwise.
func NewComposite(inputs, outputs []*graph.Variable) (*Composite, error) {
	schedule, err := innerSchedule(inputs, outputs)
	if err != nil {
		return nil, err
	}
	for _, node := range schedule {
		if _, ok := node.Op().(graph.Performer); !ok {
			return nil, fmt.Errorf("composite: inner op %s has no perform behavior", node.Op().Name())
		}
	}
	c := &Composite{
		inputs:   append([]*graph.Variable(nil), inputs...),
		outputs:  append([]*graph.Variable(nil), outputs...),
		schedule: schedule,
	}
	c.sig = c.buildSignature()
	return c, nil
}

// innerSchedule orders the nodes between inputs and outputs by a
// post-order walk from the outputs, stopping at inputs and constants.
func innerSchedule(inputs, outputs []*graph.Variable) ([]*graph.Apply, error) {
	isInput := make(map[*graph.Variable]bool, len(inputs))
	for _, in := range inputs {
		isInput[in] = true
	}

	var schedule []*graph.Apply
	visited := make(map[*graph.Apply]bool)

	var visit func(v *graph.Variable) error
	visit = func(v *graph.Variable) error {
		if isInput[v] || v.IsConstant() {
			return nil
		}
		owner := v.Owner()
		if owner == nil {
			return fmt.Errorf("composite: %s is free but not declared as an input", v)
		}
		if visited[owner] {
			return nil
		}
		visited[owner] = true
		for _, in := range owner.Inputs() {
			if err := visit(in); err != nil {
				return err
			}
		}
		schedule = append(schedule, owner)
		return nil
	}

	for _, out := range outputs {
		if err := visit(out); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

// buildSignature canonicalizes the inner structure with local numbering so
// two Composites fused from structurally equal chains compare equal.
func (op *Composite) buildSignature() string {
	local := make(map[*graph.Variable]int)
	for i, in := range op.inputs {
		local[in] = i
	}
	next := len(op.inputs)

	var sb strings.Builder
	sb.WriteString("Composite{")
	for i, node := range op.schedule {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(node.Op().Signature())
		sb.WriteByte('(')
		for j, in := range node.Inputs() {
			if j > 0 {
				sb.WriteByte(',')
			}
			if in.IsConstant() {
				fmt.Fprintf(&sb, "c%s", in.Type())
			} else {
				fmt.Fprintf(&sb, "%%%d", local[in])
			}
		}
		sb.WriteByte(')')
		for _, out := range node.Outputs() {
			local[out] = next
			next++
		}
	}
	sb.WriteString("->")
	for i, out := range op.outputs {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%%%d", local[out])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Name returns the operation name.
func (op *Composite) Name() string { return "Composite" }

// Signature identifies the fused body structurally.
func (op *Composite) Signature() string { return op.sig }

func (op *Composite) elemwise() {}

// NumInner returns the number of fused inner nodes.
func (op *Composite) NumInner() int { return len(op.schedule) }

// InferTypes checks the outer input types against the inner placeholders
// and returns the inner output types.
func (op *Composite) InferTypes(inputs []*graph.TensorType) ([]*graph.TensorType, error) {
	if len(inputs) != len(op.inputs) {
		return nil, graph.NewTypeError("Composite", "expected %d inputs, got %d", len(op.inputs), len(inputs))
	}
	for i, in := range inputs {
		if !in.CompatibleWith(op.inputs[i].Type()) {
			return nil, graph.NewTypeError("Composite", "input %d: %s is not compatible with %s", i, in, op.inputs[i].Type())
		}
	}
	outTypes := make([]*graph.TensorType, len(op.outputs))
	for i, out := range op.outputs {
		outTypes[i] = out.Type()
	}
	return outTypes, nil
}

// Perform executes the fused inner schedule.
func (op *Composite) Perform(b tensor.Backend, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	storage := make(map[*graph.Variable]*tensor.RawTensor, len(op.schedule)+len(inputs))
	for i, in := range op.inputs {
		storage[in] = inputs[i]
	}

	for _, node := range op.schedule {
		args := make([]*tensor.RawTensor, len(node.Inputs()))
		for i, in := range node.Inputs() {
			if in.IsConstant() {
				args[i] = in.Value()
				continue
			}
			v, ok := storage[in]
			if !ok {
				return nil, fmt.Errorf("composite: no value for inner input %s", in)
			}
			args[i] = v
		}
		results, err := node.Op().(graph.Performer).Perform(b, args)
		if err != nil {
			return nil, err
		}
		for i, out := range node.Outputs() {
			storage[out] = results[i]
		}
	}

	outs := make([]*tensor.RawTensor, len(op.outputs))
	for i, out := range op.outputs {
		if out.IsConstant() {
			outs[i] = out.Value()
			continue
		}
		outs[i] = storage[out]
	}
	return outs, nil
}
