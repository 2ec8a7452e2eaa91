package graph

import (
	"testing"

	"github.com/HelloBroBro/pytensor/internal/tensor"
)

// Test helpers

func assertUnifies(t *testing.T, a, b, want *TensorType) {
	t.Helper()
	got, err := a.Unify(b)
	if err != nil {
		t.Fatalf("Unify(%s, %s): %v", a, b, err)
	}
	if !got.Equal(want) {
		t.Errorf("Unify(%s, %s) = %s, want %s", a, b, got, want)
	}
}

// TensorType tests

func TestTensorTypeString(t *testing.T) {
	tests := []struct {
		typ  *TensorType
		want string
	}{
		{ScalarType(tensor.Float64), "float64()"},
		{VectorType(tensor.Float32), "float32(?)"},
		{RowType(tensor.Float64), "float64(1,?)"},
		{NewAnyRankType(tensor.Int64), "int64(any)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestUnifyMergesAxes(t *testing.T) {
	row := RowType(tensor.Float64)     // (1,?)
	matrix := MatrixType(tensor.Float64) // (?,?)

	// An axis stays broadcastable only when both sides agree.
	assertUnifies(t, row, matrix, matrix)
	assertUnifies(t, row, row, row)
}

func TestUnifyAdoptsKnownRank(t *testing.T) {
	any := NewAnyRankType(tensor.Float32)
	vec := VectorType(tensor.Float32)

	assertUnifies(t, any, vec, vec)
	assertUnifies(t, vec, any, vec)
	assertUnifies(t, any, any, any)
}

func TestUnifyCommutative(t *testing.T) {
	types := []*TensorType{
		ScalarType(tensor.Float64),
		RowType(tensor.Float64),
		MatrixType(tensor.Float64),
		NewAnyRankType(tensor.Float64),
		NewTensorType(tensor.Float64, []bool{false, true}),
	}
	for _, a := range types {
		for _, b := range types {
			ab, errAB := a.Unify(b)
			ba, errBA := b.Unify(a)
			if (errAB == nil) != (errBA == nil) {
				t.Errorf("Unify(%s, %s) and Unify(%s, %s) disagree on failure", a, b, b, a)
				continue
			}
			if errAB == nil && !ab.Equal(ba) {
				t.Errorf("Unify(%s, %s) = %s but Unify(%s, %s) = %s", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestUnifyAssociative(t *testing.T) {
	a := NewTensorType(tensor.Float64, []bool{true, false})
	b := NewTensorType(tensor.Float64, []bool{false, true})
	c := NewAnyRankType(tensor.Float64)

	ab, err := a.Unify(b)
	if err != nil {
		t.Fatalf("Unify(a, b): %v", err)
	}
	left, err := ab.Unify(c)
	if err != nil {
		t.Fatalf("Unify(ab, c): %v", err)
	}
	bc, err := b.Unify(c)
	if err != nil {
		t.Fatalf("Unify(b, c): %v", err)
	}
	right, err := a.Unify(bc)
	if err != nil {
		t.Fatalf("Unify(a, bc): %v", err)
	}
	if !left.Equal(right) {
		t.Errorf("(a∪b)∪c = %s but a∪(b∪c) = %s", left, right)
	}
}

func TestUnifyRejectsDTypeMismatch(t *testing.T) {
	a := ScalarType(tensor.Float64)
	b := ScalarType(tensor.Float32)
	if _, err := a.Unify(b); err == nil {
		t.Error("different element kinds unified")
	}
	if a.CompatibleWith(b) {
		t.Error("CompatibleWith accepted different element kinds")
	}
}

func TestUnifyRejectsRankMismatch(t *testing.T) {
	if _, err := VectorType(tensor.Float64).Unify(MatrixType(tensor.Float64)); err == nil {
		t.Error("different ranks unified")
	}
}

func TestWidensTo(t *testing.T) {
	row := RowType(tensor.Float64)
	matrix := MatrixType(tensor.Float64)

	if !row.WidensTo(matrix) {
		t.Error("a row value is a matrix value; WidensTo should accept")
	}
	if matrix.WidensTo(row) {
		t.Error("a matrix value is not always a row value; WidensTo should reject")
	}
}

func TestCheckValue(t *testing.T) {
	row := RowType(tensor.Float64)

	ok, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{1, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if err := row.CheckValue(ok); err != nil {
		t.Errorf("valid row rejected: %v", err)
	}

	wide, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if err := row.CheckValue(wide); err == nil {
		t.Error("size 2 on a broadcastable axis accepted")
	}

	vec, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if err := row.CheckValue(vec); err == nil {
		t.Error("rank mismatch accepted")
	}

	ints, err := tensor.FromSlice([]int64{1, 2, 3}, tensor.Shape{1, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if err := row.CheckValue(ints); err == nil {
		t.Error("element kind mismatch accepted")
	}
}

func TestCheckValueAnyRank(t *testing.T) {
	any := NewAnyRankType(tensor.Float64)
	v, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if err := any.CheckValue(v); err != nil {
		t.Errorf("any-rank type rejected a matrix: %v", err)
	}
}

// Variable tests

func TestNewConstantMarksUnitAxes(t *testing.T) {
	v, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{1, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	c := NewConstant(v, "c")
	if !c.IsConstant() {
		t.Fatal("constant not marked as constant")
	}
	pattern := c.Type().Broadcastable()
	if !pattern[0] || pattern[1] {
		t.Errorf("broadcastable pattern = %v, want [true false]", pattern)
	}
}

func TestVariableIdentity(t *testing.T) {
	a := NewVariable(ScalarType(tensor.Float64), "a")
	b := NewVariable(ScalarType(tensor.Float64), "a")
	if a.ID() == b.ID() {
		t.Error("distinct variables share an ID")
	}
	if a.Owner() != nil {
		t.Error("free variable has an owner")
	}
}

// MakeApply tests

type identityOp struct{}

func (identityOp) Name() string      { return "Identity" }
func (identityOp) Signature() string { return "Identity" }
func (identityOp) InferTypes(inputs []*TensorType) ([]*TensorType, error) {
	if len(inputs) != 1 {
		return nil, typeErrorf("Identity", "expected 1 input, got %d", len(inputs))
	}
	return []*TensorType{inputs[0]}, nil
}

func TestMakeApply(t *testing.T) {
	x := NewVariable(VectorType(tensor.Float64), "x")
	node, err := MakeApply(identityOp{}, []*Variable{x})
	if err != nil {
		t.Fatalf("MakeApply: %v", err)
	}
	out := node.Output()
	if out.Owner() != node {
		t.Error("output does not point back to its node")
	}
	if out.OwnerIndex() != 0 {
		t.Errorf("OwnerIndex = %d, want 0", out.OwnerIndex())
	}
	if !out.Type().Equal(x.Type()) {
		t.Errorf("output type = %s, want %s", out.Type(), x.Type())
	}
}

func TestMakeApplyRejectsNilInput(t *testing.T) {
	_, err := MakeApply(identityOp{}, []*Variable{nil})
	if err == nil {
		t.Fatal("nil input accepted")
	}
	if _, ok := err.(*TypeError); !ok {
		t.Errorf("error type = %T, want *TypeError", err)
	}
}

func TestMakeApplyRejectsBadArity(t *testing.T) {
	x := NewVariable(VectorType(tensor.Float64), "x")
	y := NewVariable(VectorType(tensor.Float64), "y")
	if _, err := MakeApply(identityOp{}, []*Variable{x, y}); err == nil {
		t.Error("wrong arity accepted")
	}
}
