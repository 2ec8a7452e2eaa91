package fgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/graph/ops"
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

func vec(name string) *graph.Variable {
	return graph.NewVariable(graph.VectorType(tensor.Float64), name)
}

func mustNew(t *testing.T, inputs, outputs []*graph.Variable) *FunctionGraph {
	t.Helper()
	fg, err := New(inputs, outputs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return fg
}

// scheduleNames renders the toposorted schedule for structural comparison.
func scheduleNames(fg *FunctionGraph) []string {
	order := fg.Toposort()
	names := make([]string, len(order))
	for i, node := range order {
		names[i] = node.String()
	}
	return names
}

// Construction

func TestNewTracesBackward(t *testing.T) {
	x, y := vec("x"), vec("y")
	mul := mustApply(t, ops.NewMul(), x, y)
	add := mustApply(t, ops.NewAdd(), mul.Output(), x)

	fg := mustNew(t, []*graph.Variable{x, y}, []*graph.Variable{add.Output()})
	if fg.NumApplies() != 2 {
		t.Errorf("NumApplies = %d, want 2", fg.NumApplies())
	}
	if !fg.HasApply(mul) || !fg.HasApply(add) {
		t.Error("traced nodes missing from the live set")
	}
}

func TestNewRejectsFreeVariable(t *testing.T) {
	x, y := vec("x"), vec("y")
	add := mustApply(t, ops.NewAdd(), x, y)

	_, err := New([]*graph.Variable{x}, []*graph.Variable{add.Output()})
	if err == nil {
		t.Fatal("undeclared free variable accepted")
	}
	if _, ok := err.(*GraphError); !ok {
		t.Errorf("error type = %T, want *GraphError", err)
	}
}

func TestNewAllowsConstants(t *testing.T) {
	x := vec("x")
	c := graph.NewConstant(tensor.Scalar(2.0), "two")
	mul := mustApply(t, ops.NewMul(), x, c)

	fg := mustNew(t, []*graph.Variable{x}, []*graph.Variable{mul.Output()})
	if fg.NumApplies() != 1 {
		t.Errorf("NumApplies = %d, want 1", fg.NumApplies())
	}
}

func TestNewAllowsUnusedInput(t *testing.T) {
	x, unused := vec("x"), vec("unused")
	neg := mustApply(t, ops.NewNeg(), x)

	fg := mustNew(t, []*graph.Variable{x, unused}, []*graph.Variable{neg.Output()})
	if fg.NumApplies() != 1 {
		t.Errorf("NumApplies = %d, want 1", fg.NumApplies())
	}
}

func TestNewStopsAtOwnedInput(t *testing.T) {
	// Lazy evaluation binds interior variables: declaring an owned
	// variable as input must cut off its ancestry.
	x := vec("x")
	neg := mustApply(t, ops.NewNeg(), x)
	exp := mustApply(t, ops.NewExp(), neg.Output())

	fg := mustNew(t, []*graph.Variable{neg.Output()}, []*graph.Variable{exp.Output()})
	if fg.NumApplies() != 1 {
		t.Errorf("NumApplies = %d, want 1 (ancestry of the bound input must not be traced)", fg.NumApplies())
	}
	if fg.HasApply(neg) {
		t.Error("producer of a declared input was traced into the graph")
	}
}

// Clients

func TestClients(t *testing.T) {
	x, y := vec("x"), vec("y")
	mul := mustApply(t, ops.NewMul(), x, y)
	add := mustApply(t, ops.NewAdd(), mul.Output(), x)

	fg := mustNew(t, []*graph.Variable{x, y}, []*graph.Variable{add.Output()})

	xClients := fg.Clients(x)
	if len(xClients) != 2 {
		t.Fatalf("x has %d clients, want 2", len(xClients))
	}
	mulClients := fg.Clients(mul.Output())
	if len(mulClients) != 1 || mulClients[0].Node != add || mulClients[0].Index != 0 {
		t.Errorf("mul output clients = %v, want [{add 0}]", mulClients)
	}
}

// Replace

func TestReplaceRedirectsClientsAndOutputs(t *testing.T) {
	x, y := vec("x"), vec("y")
	add := mustApply(t, ops.NewAdd(), x, y)
	neg := mustApply(t, ops.NewNeg(), add.Output())

	fg := mustNew(t, []*graph.Variable{x, y}, []*graph.Variable{neg.Output(), add.Output()})

	mul := mustApply(t, ops.NewMul(), x, y)
	if err := fg.Replace(add.Output(), mul.Output(), Strict); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if neg.Inputs()[0] != mul.Output() {
		t.Error("client input slot not redirected")
	}
	if fg.Outputs()[1] != mul.Output() {
		t.Error("declared output not redirected")
	}
	if fg.HasApply(add) {
		t.Error("dead node survived the replacement")
	}
}

func TestReplaceStrictRequiresEqualTypes(t *testing.T) {
	x := graph.NewVariable(graph.MatrixType(tensor.Float64), "x")
	row := graph.NewVariable(graph.RowType(tensor.Float64), "r")
	neg := mustApply(t, ops.NewNeg(), x)

	fg := mustNew(t, []*graph.Variable{x, row}, []*graph.Variable{neg.Output()})

	negRow := mustApply(t, ops.NewNeg(), row)
	if err := fg.Replace(neg.Output(), negRow.Output(), Strict); err == nil {
		t.Error("strict replace accepted a widening")
	}
	if err := fg.Replace(neg.Output(), negRow.Output(), Permissive); err != nil {
		t.Errorf("permissive replace rejected compatible types: %v", err)
	}
}

func TestReplaceRejectsDTypeChange(t *testing.T) {
	x := vec("x")
	f32 := graph.NewVariable(graph.VectorType(tensor.Float32), "f")
	neg := mustApply(t, ops.NewNeg(), x)

	fg := mustNew(t, []*graph.Variable{x, f32}, []*graph.Variable{neg.Output()})
	if err := fg.Replace(neg.Output(), f32, Permissive); err == nil {
		t.Error("element kind change accepted even in permissive mode")
	}
}

func TestReplaceRejectsCycle(t *testing.T) {
	x := vec("x")
	neg := mustApply(t, ops.NewNeg(), x)
	exp := mustApply(t, ops.NewExp(), neg.Output())

	fg := mustNew(t, []*graph.Variable{x}, []*graph.Variable{exp.Output()})

	before := scheduleNames(fg)
	// exp depends on neg; routing neg's consumers to exp would loop.
	err := fg.Replace(neg.Output(), exp.Output(), Strict)
	if err == nil {
		t.Fatal("cycle-creating replacement accepted")
	}
	if diff := cmp.Diff(before, scheduleNames(fg)); diff != "" {
		t.Errorf("failed replace mutated the graph (-before +after):\n%s", diff)
	}
}

func TestReplaceAtomicOnUndeclaredInput(t *testing.T) {
	x, y := vec("x"), vec("y")
	neg := mustApply(t, ops.NewNeg(), x)
	fg := mustNew(t, []*graph.Variable{x}, []*graph.Variable{neg.Output()})

	// y is not declared; importing Add(x, y) must fail without touching
	// the container.
	add := mustApply(t, ops.NewAdd(), x, y)
	before := scheduleNames(fg)
	if err := fg.Replace(neg.Output(), add.Output(), Permissive); err == nil {
		t.Fatal("replacement with undeclared free input accepted")
	}
	if diff := cmp.Diff(before, scheduleNames(fg)); diff != "" {
		t.Errorf("failed replace mutated the graph (-before +after):\n%s", diff)
	}
}

// Toposort

func TestToposortRespectsDependencies(t *testing.T) {
	x, y := vec("x"), vec("y")
	mul := mustApply(t, ops.NewMul(), x, y)
	add := mustApply(t, ops.NewAdd(), mul.Output(), y)
	neg := mustApply(t, ops.NewNeg(), add.Output())

	fg := mustNew(t, []*graph.Variable{x, y}, []*graph.Variable{neg.Output()})

	pos := make(map[*graph.Apply]int)
	for i, node := range fg.Toposort() {
		pos[node] = i
	}
	if pos[mul] > pos[add] || pos[add] > pos[neg] {
		t.Errorf("schedule violates dependencies: mul=%d add=%d neg=%d", pos[mul], pos[add], pos[neg])
	}
}

func TestToposortDeterministic(t *testing.T) {
	x, y := vec("x"), vec("y")
	// Two independent branches joined at the end: their relative order is
	// a tie the insertion sequence must break the same way every time.
	a := mustApply(t, ops.NewNeg(), x)
	b := mustApply(t, ops.NewNeg(), y)
	join := mustApply(t, ops.NewAdd(), a.Output(), b.Output())

	fg := mustNew(t, []*graph.Variable{x, y}, []*graph.Variable{join.Output()})

	first := scheduleNames(fg)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, scheduleNames(fg)); diff != "" {
			t.Fatalf("schedule changed between calls (-first +now):\n%s", diff)
		}
	}
}

// Prune

func TestPruneDropsDeadBranch(t *testing.T) {
	x := vec("x")
	dead := mustApply(t, ops.NewExp(), x)
	live := mustApply(t, ops.NewNeg(), x)

	fg := mustNew(t, []*graph.Variable{x}, []*graph.Variable{live.Output(), dead.Output()})

	// Dropping the second output makes the exp branch dead.
	if err := fg.Replace(dead.Output(), live.Output(), Strict); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if fg.HasApply(dead) {
		t.Error("dead branch survived")
	}
	if !fg.HasApply(live) {
		t.Error("live branch pruned")
	}
}

// Clone

func TestCloneIsIsomorphicAndIndependent(t *testing.T) {
	x, y := vec("x"), vec("y")
	mul := mustApply(t, ops.NewMul(), x, y)
	add := mustApply(t, ops.NewAdd(), mul.Output(), x)

	fg := mustNew(t, []*graph.Variable{x, y}, []*graph.Variable{add.Output()})

	clone, mapping, err := fg.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if diff := cmp.Diff(scheduleNames(fg), scheduleNames(clone)); diff != "" {
		t.Errorf("clone schedule differs (-orig +clone):\n%s", diff)
	}
	if mapping[x] == x {
		t.Error("input variable shared with the clone")
	}
	if clone.Inputs()[0] != mapping[x] || clone.Inputs()[1] != mapping[y] {
		t.Error("clone inputs do not follow the mapping")
	}

	// Mutating the clone must not affect the original.
	if err := clone.Replace(mapping[add.Output()], mapping[mul.Output()], Strict); err != nil {
		t.Fatalf("Replace on clone: %v", err)
	}
	if !fg.HasApply(add) {
		t.Error("mutating the clone changed the original")
	}
}

func TestCloneSharesConstants(t *testing.T) {
	x := vec("x")
	c := graph.NewConstant(tensor.Scalar(3.0), "three")
	mul := mustApply(t, ops.NewMul(), x, c)

	fg := mustNew(t, []*graph.Variable{x}, []*graph.Variable{mul.Output()})
	clone, _, err := fg.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	cloneMul := clone.Toposort()[0]
	if cloneMul.Inputs()[1] != c {
		t.Error("constant was copied instead of shared")
	}
}
