package ops

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Sigmoid is the element-wise logistic function. It carries no direct
// perform behavior: the lowering pass expands it to 1 / (1 + exp(-x))
// before linking.
type Sigmoid struct {
	unaryElemwise
}

// NewSigmoid creates a Sigmoid operation.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{unaryElemwise{name: "Sigmoid", floatOnly: true}}
}

// Lower expands sigmoid(x) into 1 / (1 + exp(-x)).
func (op *Sigmoid) Lower(node *graph.Apply) ([]*graph.Variable, error) {
	x := node.Inputs()[0]

	var one *graph.Variable
	switch x.Type().DType() {
	case tensor.Float32:
		one = graph.NewConstant(tensor.Scalar(float32(1)), "")
	default:
		one = graph.NewConstant(tensor.Scalar(float64(1)), "")
	}

	neg, err := graph.MakeApply(NewNeg(), []*graph.Variable{x})
	if err != nil {
		return nil, err
	}
	exp, err := graph.MakeApply(NewExp(), []*graph.Variable{neg.Output()})
	if err != nil {
		return nil, err
	}
	denom, err := graph.MakeApply(NewAdd(), []*graph.Variable{one, exp.Output()})
	if err != nil {
		return nil, err
	}
	out, err := graph.MakeApply(NewDiv(), []*graph.Variable{one, denom.Output()})
	if err != nil {
		return nil, err
	}
	return []*graph.Variable{out.Output()}, nil
}
