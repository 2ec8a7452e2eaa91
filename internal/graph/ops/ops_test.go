package ops

import (
	"math"
	"testing"

	"github.com/HelloBroBro/pytensor/internal/backend/cpu"
	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Test helpers

func mustApply(t *testing.T, op graph.Op, inputs ...*graph.Variable) *graph.Apply {
	t.Helper()
	node, err := graph.MakeApply(op, inputs)
	if err != nil {
		t.Fatalf("MakeApply(%s): %v", op.Name(), err)
	}
	return node
}

func matrixVar(name string) *graph.Variable {
	return graph.NewVariable(graph.MatrixType(tensor.Float64), name)
}

// Elementwise type inference

func TestBinaryElemwiseUnifiesTypes(t *testing.T) {
	row := graph.NewVariable(graph.RowType(tensor.Float64), "row")
	mat := matrixVar("mat")

	node := mustApply(t, NewAdd(), row, mat)
	if got, want := node.Output().Type().String(), "float64(?,?)"; got != want {
		t.Errorf("output type = %s, want %s", got, want)
	}
}

func TestBinaryElemwisePadsRanks(t *testing.T) {
	scalar := graph.NewVariable(graph.ScalarType(tensor.Float64), "s")
	mat := matrixVar("mat")

	node := mustApply(t, NewMul(), scalar, mat)
	out := node.Output().Type()
	if out.Rank() != 2 {
		t.Fatalf("output rank = %d, want 2", out.Rank())
	}
	if got, want := out.String(), "float64(?,?)"; got != want {
		t.Errorf("output type = %s, want %s", got, want)
	}
}

func TestBinaryElemwiseRejectsDTypeMix(t *testing.T) {
	a := graph.NewVariable(graph.ScalarType(tensor.Float64), "a")
	b := graph.NewVariable(graph.ScalarType(tensor.Float32), "b")
	if _, err := graph.MakeApply(NewAdd(), []*graph.Variable{a, b}); err == nil {
		t.Error("mixed element kinds accepted; an explicit Cast is required")
	}
}

func TestFloatOnlyUnaries(t *testing.T) {
	intVec := graph.NewVariable(graph.VectorType(tensor.Int32), "iv")
	for _, op := range []graph.Op{NewExp(), NewLog(), NewSqrt(), NewSigmoid()} {
		if _, err := graph.MakeApply(op, []*graph.Variable{intVec}); err == nil {
			t.Errorf("%s accepted an integer operand", op.Name())
		}
	}

	// Neg works for every kind.
	if _, err := graph.MakeApply(NewNeg(), []*graph.Variable{intVec}); err != nil {
		t.Errorf("Neg rejected an integer operand: %v", err)
	}
}

// Dot

func TestDotInference(t *testing.T) {
	vec := graph.NewVariable(graph.VectorType(tensor.Float64), "v")
	mat := matrixVar("m")

	inner := mustApply(t, NewDot(), vec, vec)
	if inner.Output().Type().Rank() != 0 {
		t.Errorf("vector·vector rank = %d, want 0", inner.Output().Type().Rank())
	}

	mm := mustApply(t, NewDot(), mat, mat)
	if mm.Output().Type().Rank() != 2 {
		t.Errorf("matrix·matrix rank = %d, want 2", mm.Output().Type().Rank())
	}

	mv := mustApply(t, NewDot(), mat, vec)
	if mv.Output().Type().Rank() != 1 {
		t.Errorf("matrix·vector rank = %d, want 1", mv.Output().Type().Rank())
	}
}

func TestDotRejectsHighRank(t *testing.T) {
	cube := graph.NewVariable(graph.NewTensorType(tensor.Float64, []bool{false, false, false}), "c")
	vec := graph.NewVariable(graph.VectorType(tensor.Float64), "v")
	if _, err := graph.MakeApply(NewDot(), []*graph.Variable{cube, vec}); err == nil {
		t.Error("rank-3 operand accepted")
	}
}

// Shape operations

func TestTransposeInference(t *testing.T) {
	row := graph.NewVariable(graph.RowType(tensor.Float64), "r")

	node := mustApply(t, NewTranspose(nil), row)
	if got, want := node.Output().Type().String(), "float64(?,1)"; got != want {
		t.Errorf("transposed type = %s, want %s", got, want)
	}

	if _, err := graph.MakeApply(NewTranspose([]int{0, 0}), []*graph.Variable{row}); err == nil {
		t.Error("repeated axis accepted")
	}
}

func TestReshapeInference(t *testing.T) {
	vec := graph.NewVariable(graph.VectorType(tensor.Float64), "v")

	node := mustApply(t, NewReshape(tensor.Shape{1, 4}), vec)
	if got, want := node.Output().Type().String(), "float64(1,?)"; got != want {
		t.Errorf("reshaped type = %s, want %s", got, want)
	}
}

func TestSumInference(t *testing.T) {
	mat := matrixVar("m")

	all := mustApply(t, NewSum(), mat)
	if all.Output().Type().Rank() != 0 {
		t.Errorf("full reduction rank = %d, want 0", all.Output().Type().Rank())
	}

	axis := mustApply(t, NewSumAxis(0, false), mat)
	if axis.Output().Type().Rank() != 1 {
		t.Errorf("axis reduction rank = %d, want 1", axis.Output().Type().Rank())
	}

	keep := mustApply(t, NewSumAxis(0, true), mat)
	if got, want := keep.Output().Type().String(), "float64(1,?)"; got != want {
		t.Errorf("kept-axis type = %s, want %s", got, want)
	}

	if _, err := graph.MakeApply(NewSumAxis(5, false), []*graph.Variable{mat}); err == nil {
		t.Error("out-of-range axis accepted")
	}
}

func TestCastInference(t *testing.T) {
	mat := matrixVar("m")
	node := mustApply(t, NewCast(tensor.Int64), mat)
	out := node.Output().Type()
	if out.DType() != tensor.Int64 {
		t.Errorf("cast dtype = %v, want Int64", out.DType())
	}
	if out.Rank() != 2 {
		t.Errorf("cast rank = %d, want 2", out.Rank())
	}
}

// Sigmoid lowering

func TestSigmoidLower(t *testing.T) {
	x := graph.NewVariable(graph.VectorType(tensor.Float64), "x")
	node := mustApply(t, NewSigmoid(), x)

	repls, err := node.Op().(graph.Lowerer).Lower(node)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(repls) != 1 {
		t.Fatalf("Lower produced %d outputs, want 1", len(repls))
	}
	if !repls[0].Type().CompatibleWith(node.Output().Type()) {
		t.Errorf("lowered type %s incompatible with %s", repls[0].Type(), node.Output().Type())
	}

	// The expansion evaluates to 1/(1+exp(-x)).
	backend := cpu.New()
	storage := map[*graph.Variable]*tensor.RawTensor{}
	xv, err := tensor.FromSlice([]float64{0, 2}, tensor.Shape{2})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	storage[x] = xv

	var eval func(v *graph.Variable) (*tensor.RawTensor, error)
	eval = func(v *graph.Variable) (*tensor.RawTensor, error) {
		if got, ok := storage[v]; ok {
			return got, nil
		}
		if v.IsConstant() {
			return v.Value(), nil
		}
		owner := v.Owner()
		args := make([]*tensor.RawTensor, len(owner.Inputs()))
		for i, in := range owner.Inputs() {
			got, err := eval(in)
			if err != nil {
				return nil, err
			}
			args[i] = got
		}
		results, err := owner.Op().(graph.Performer).Perform(backend, args)
		if err != nil {
			return nil, err
		}
		for i, out := range owner.Outputs() {
			storage[out] = results[i]
		}
		return storage[v], nil
	}

	got, err := eval(repls[0])
	if err != nil {
		t.Fatalf("evaluating lowered graph: %v", err)
	}
	want := []float64{0.5, 1 / (1 + math.Exp(-2))}
	for i, w := range want {
		if math.Abs(got.AsFloat64()[i]-w) > 1e-12 {
			t.Errorf("sigmoid[%d] = %v, want %v", i, got.AsFloat64()[i], w)
		}
	}
}

// Composite

func buildChain(t *testing.T) (inputs, outputs []*graph.Variable) {
	t.Helper()
	x := graph.NewVariable(graph.VectorType(tensor.Float64), "x")
	y := graph.NewVariable(graph.VectorType(tensor.Float64), "y")
	mul := mustApply(t, NewMul(), x, y)
	add := mustApply(t, NewAdd(), mul.Output(), x)
	return []*graph.Variable{x, y}, []*graph.Variable{add.Output()}
}

func TestCompositePerform(t *testing.T) {
	inputs, outputs := buildChain(t)
	comp, err := NewComposite(inputs, outputs)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if comp.NumInner() != 2 {
		t.Errorf("NumInner = %d, want 2", comp.NumInner())
	}

	xv, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	yv, err := tensor.FromSlice([]float64{4, 5, 6}, tensor.Shape{3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	results, err := comp.Perform(cpu.New(), []*tensor.RawTensor{xv, yv})
	if err != nil {
		t.Fatalf("Perform: %v", err)
	}
	want := []float64{5, 12, 21} // x*y + x
	for i, w := range want {
		if results[0].AsFloat64()[i] != w {
			t.Errorf("composite[%d] = %v, want %v", i, results[0].AsFloat64()[i], w)
		}
	}
}

func TestCompositeSignatureStructural(t *testing.T) {
	in1, out1 := buildChain(t)
	in2, out2 := buildChain(t)

	c1, err := NewComposite(in1, out1)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	c2, err := NewComposite(in2, out2)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if c1.Signature() != c2.Signature() {
		t.Errorf("structurally equal chains have different signatures:\n%s\n%s", c1.Signature(), c2.Signature())
	}
}

func TestCompositeRejectsFreeInnerVariable(t *testing.T) {
	x := graph.NewVariable(graph.VectorType(tensor.Float64), "x")
	y := graph.NewVariable(graph.VectorType(tensor.Float64), "y")
	add := mustApply(t, NewAdd(), x, y)

	if _, err := NewComposite([]*graph.Variable{x}, []*graph.Variable{add.Output()}); err == nil {
		t.Error("free inner variable accepted")
	}
}

// ZerosLike

func TestZerosLikePerform(t *testing.T) {
	xv, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	results, err := NewZerosLike().Perform(cpu.New(), []*tensor.RawTensor{xv})
	if err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if !results[0].Shape().Equal(tensor.Shape{3}) {
		t.Errorf("shape = %v, want [3]", results[0].Shape())
	}
	for i, v := range results[0].AsFloat64() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}
