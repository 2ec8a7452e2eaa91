package rewrite

import (
	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/graph/ops"
)

// AlgebraicSimplifications returns the standard local identity rules, in
// their documented application order.
func AlgebraicSimplifications() []Rewriter {
	return []Rewriter{
		Local(addZero{}),
		Local(mulOne{}),
		Local(mulZero{}),
		Local(doubleNeg{}),
		Local(subSelf{}),
		Local(logExp{}),
	}
}

// isConstFill reports whether v is a constant whose every element equals
// fill.
func isConstFill(v *graph.Variable, fill float64) bool {
	if !v.IsConstant() {
		return false
	}
	val := v.Value()
	for i := 0; i < val.NumElements(); i++ {
		if val.Float64At(i) != fill {
			return false
		}
	}
	return true
}

// keepsType reports whether replacing node's single output with v keeps
// the output type exactly. A wider output type means the eliminated
// operand carried the broadcast, so the surviving operand alone would
// compute a smaller result.
func keepsType(node *graph.Apply, v *graph.Variable) bool {
	return v.Type().Equal(node.Output().Type())
}

// addZero rewrites x + 0 (and 0 + x) to x.
type addZero struct{}

func (addZero) Name() string { return "add_zero" }

func (addZero) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	if _, ok := node.Op().(*ops.Add); !ok {
		return nil, nil
	}
	a, b := node.Inputs()[0], node.Inputs()[1]
	if isConstFill(b, 0) && keepsType(node, a) {
		return []*graph.Variable{a}, nil
	}
	if isConstFill(a, 0) && keepsType(node, b) {
		return []*graph.Variable{b}, nil
	}
	return nil, nil
}

// mulOne rewrites x * 1 (and 1 * x) to x.
type mulOne struct{}

func (mulOne) Name() string { return "mul_one" }

func (mulOne) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	if _, ok := node.Op().(*ops.Mul); !ok {
		return nil, nil
	}
	a, b := node.Inputs()[0], node.Inputs()[1]
	if isConstFill(b, 1) && keepsType(node, a) {
		return []*graph.Variable{a}, nil
	}
	if isConstFill(a, 1) && keepsType(node, b) {
		return []*graph.Variable{b}, nil
	}
	return nil, nil
}

// mulZero rewrites x * 0 to zeros shaped like the result.
type mulZero struct{}

func (mulZero) Name() string { return "mul_zero" }

func (mulZero) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	if _, ok := node.Op().(*ops.Mul); !ok {
		return nil, nil
	}
	a, b := node.Inputs()[0], node.Inputs()[1]
	var other *graph.Variable
	switch {
	case isConstFill(b, 0):
		other = a
	case isConstFill(a, 0):
		other = b
	default:
		return nil, nil
	}
	// The zero must keep the full result shape, which depends on the
	// surviving operand; ZerosLike captures it without a static size.
	if !other.Type().Equal(node.Output().Type()) {
		return nil, nil
	}
	zeros, err := graph.MakeApply(ops.NewZerosLike(), []*graph.Variable{other})
	if err != nil {
		return nil, err
	}
	return []*graph.Variable{zeros.Output()}, nil
}

// doubleNeg rewrites Neg(Neg(x)) to x.
type doubleNeg struct{}

func (doubleNeg) Name() string { return "double_neg" }

func (doubleNeg) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	if _, ok := node.Op().(*ops.Neg); !ok {
		return nil, nil
	}
	inner := node.Inputs()[0].Owner()
	if inner == nil {
		return nil, nil
	}
	if _, ok := inner.Op().(*ops.Neg); !ok {
		return nil, nil
	}
	return []*graph.Variable{inner.Inputs()[0]}, nil
}

// subSelf rewrites x - x to ZerosLike(x).
type subSelf struct{}

func (subSelf) Name() string { return "sub_self" }

func (subSelf) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	if _, ok := node.Op().(*ops.Sub); !ok {
		return nil, nil
	}
	if node.Inputs()[0] != node.Inputs()[1] {
		return nil, nil
	}
	zeros, err := graph.MakeApply(ops.NewZerosLike(), []*graph.Variable{node.Inputs()[0]})
	if err != nil {
		return nil, err
	}
	return []*graph.Variable{zeros.Output()}, nil
}

// logExp rewrites Log(Exp(x)) to x.
type logExp struct{}

func (logExp) Name() string { return "log_exp" }

func (logExp) Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error) {
	if _, ok := node.Op().(*ops.Log); !ok {
		return nil, nil
	}
	inner := node.Inputs()[0].Owner()
	if inner == nil {
		return nil, nil
	}
	if _, ok := inner.Op().(*ops.Exp); !ok {
		return nil, nil
	}
	return []*graph.Variable{inner.Inputs()[0]}, nil
}
