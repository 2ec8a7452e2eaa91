package fgraph

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// ReplaceMode controls how strictly Replace compares the old and new
// Variable types.
type ReplaceMode int

const (
	// Strict requires the replacement to have exactly the old type.
	Strict ReplaceMode = iota
	// Permissive additionally allows compatible types, i.e. the
	// replacement may widen a broadcastable axis to arbitrary size.
	Permissive
)

// Replace redirects every use of old (client input slots and declared
// output positions) to new. The replacement subgraph is imported first;
// any failure (type mismatch, undeclared free input, would-be cycle)
// leaves the container unchanged.
func (fg *FunctionGraph) Replace(old, new *graph.Variable, mode ReplaceMode) error {
	if old == new {
		return nil
	}
	if !fg.variables[old] {
		return graphErrorf("%s is not part of this graph", old)
	}

	switch mode {
	case Strict:
		if !old.Type().Equal(new.Type()) {
			return graphErrorf("cannot replace %s of type %s with %s of type %s in strict mode",
				old, old.Type(), new, new.Type())
		}
	case Permissive:
		if !old.Type().CompatibleWith(new.Type()) {
			return graphErrorf("cannot replace %s of type %s with incompatible type %s",
				old, old.Type(), new.Type())
		}
	}

	// Redirecting old's clients to new creates a cycle exactly when new
	// already depends on old. Check before any mutation.
	if fg.dependsOn(new, old) {
		return graphErrorf("replacing %s with %s would create a cycle", old, new)
	}

	if err := fg.importVariable(new); err != nil {
		return err
	}

	for _, c := range append([]Client(nil), fg.clients[old]...) {
		c.Node.SetInput(c.Index, new)
		fg.removeClient(old, c)
		fg.clients[new] = append(fg.clients[new], c)
	}
	for i, out := range fg.outputs {
		if out == old {
			fg.outputs[i] = new
		}
	}

	fg.Prune()
	return nil
}

// dependsOn reports whether v transitively depends on target through the
// producing nodes of its ancestry.
func (fg *FunctionGraph) dependsOn(v, target *graph.Variable) bool {
	if v == target {
		return true
	}
	seen := make(map[*graph.Apply]bool)
	var walk func(v *graph.Variable) bool
	walk = func(v *graph.Variable) bool {
		if v == target {
			return true
		}
		owner := v.Owner()
		if owner == nil || seen[owner] {
			return false
		}
		seen[owner] = true
		for _, in := range owner.Inputs() {
			if walk(in) {
				return true
			}
		}
		return false
	}
	return walk(v)
}
