// Package fgraph provides the FunctionGraph container: the owned, mutable
// set of Apply and Variable nodes between declared inputs and outputs,
// with client bookkeeping, safe in-place replacement and deterministic
// topological ordering.
package fgraph

import (
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// Client is one use of a Variable: input slot Index of node Node.
type Client struct {
	Node  *graph.Apply
	Index int
}

// FunctionGraph owns the subgraph reachable backward from its declared
// outputs. It maintains, for every live Variable, the list of Apply nodes
// consuming it, and keeps the reachable subgraph acyclic across every
// mutation.
//
// A FunctionGraph is not safe for concurrent mutation; each compilation
// pipeline owns its own container (see Clone).
type FunctionGraph struct {
	inputs  []*graph.Variable
	outputs []*graph.Variable

	applies   map[*graph.Apply]bool
	variables map[*graph.Variable]bool
	clients   map[*graph.Variable][]Client

	// seq records insertion order; toposort breaks ties with it so the
	// schedule is reproducible run to run.
	seq     map[*graph.Apply]int
	nextSeq int
}

// New builds a FunctionGraph by tracing backward from outputs. The trace
// stops at declared inputs and constants; meeting a cycle or a free
// Variable not declared in inputs fails with a *GraphError. Declared
// inputs that no output depends on are allowed, as are declared inputs
// that cut off an owned interior Variable (lazy evaluation binds those).
func New(inputs, outputs []*graph.Variable) (*FunctionGraph, error) {
	fg := &FunctionGraph{
		inputs:    append([]*graph.Variable(nil), inputs...),
		outputs:   append([]*graph.Variable(nil), outputs...),
		applies:   make(map[*graph.Apply]bool),
		variables: make(map[*graph.Variable]bool),
		clients:   make(map[*graph.Variable][]Client),
	}

	declared := make(map[*graph.Variable]bool, len(inputs))
	for _, in := range inputs {
		if in == nil {
			return nil, graphErrorf("declared input is nil")
		}
		declared[in] = true
		fg.variables[in] = true
	}

	// Backward DFS with on-stack marking for cycle detection.
	onStack := make(map[*graph.Apply]bool)
	var visit func(v *graph.Variable) error
	visit = func(v *graph.Variable) error {
		if declared[v] || v.IsConstant() {
			fg.variables[v] = true
			return nil
		}
		fg.variables[v] = true
		owner := v.Owner()
		if owner == nil {
			return graphErrorf("%s is reachable from the outputs but is not a declared input", v)
		}
		if fg.applies[owner] {
			if onStack[owner] {
				return graphErrorf("cycle detected through %s", owner)
			}
			return nil
		}
		fg.registerApply(owner)
		onStack[owner] = true
		for _, in := range owner.Inputs() {
			if err := visit(in); err != nil {
				return err
			}
		}
		onStack[owner] = false
		return nil
	}

	for _, out := range outputs {
		if out == nil {
			return nil, graphErrorf("declared output is nil")
		}
		if err := visit(out); err != nil {
			return nil, err
		}
	}
	return fg, nil
}

// registerApply adds node to the live set and indexes its input uses.
func (fg *FunctionGraph) registerApply(node *graph.Apply) {
	fg.applies[node] = true
	fg.seq = fg.ensureSeq()
	fg.seq[node] = fg.nextSeq
	fg.nextSeq++
	for _, out := range node.Outputs() {
		fg.variables[out] = true
	}
	for i, in := range node.Inputs() {
		fg.clients[in] = append(fg.clients[in], Client{Node: node, Index: i})
	}
}

func (fg *FunctionGraph) ensureSeq() map[*graph.Apply]int {
	if fg.seq == nil {
		fg.seq = make(map[*graph.Apply]int)
	}
	return fg.seq
}

// unregisterApply drops node from the live set and the client index.
func (fg *FunctionGraph) unregisterApply(node *graph.Apply) {
	delete(fg.applies, node)
	delete(fg.seq, node)
	for _, out := range node.Outputs() {
		delete(fg.variables, out)
		delete(fg.clients, out)
	}
	for i, in := range node.Inputs() {
		fg.removeClient(in, Client{Node: node, Index: i})
	}
}

func (fg *FunctionGraph) removeClient(v *graph.Variable, c Client) {
	list := fg.clients[v]
	for i, have := range list {
		if have == c {
			fg.clients[v] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(fg.clients[v]) == 0 {
		delete(fg.clients, v)
	}
}

// Inputs returns the declared input Variables in order.
func (fg *FunctionGraph) Inputs() []*graph.Variable {
	return fg.inputs
}

// Outputs returns the declared output Variables in order.
func (fg *FunctionGraph) Outputs() []*graph.Variable {
	return fg.outputs
}

// NumApplies returns the number of live Apply nodes.
func (fg *FunctionGraph) NumApplies() int {
	return len(fg.applies)
}

// HasApply reports whether node is live in this container.
func (fg *FunctionGraph) HasApply(node *graph.Apply) bool {
	return fg.applies[node]
}

// Clients returns the Apply nodes consuming v, with their input slots.
// The returned slice must not be mutated.
func (fg *FunctionGraph) Clients(v *graph.Variable) []Client {
	return fg.clients[v]
}

// IsOutput reports whether v appears in the declared output list.
func (fg *FunctionGraph) IsOutput(v *graph.Variable) bool {
	for _, out := range fg.outputs {
		if out == v {
			return true
		}
	}
	return false
}

// importVariable brings the subgraph producing v into the container.
// Every free Variable it reaches must already be a graph input or a
// constant; otherwise the import fails and the container is unchanged.
func (fg *FunctionGraph) importVariable(v *graph.Variable) error {
	var pending []*graph.Apply

	var check func(v *graph.Variable) error
	check = func(v *graph.Variable) error {
		if fg.variables[v] {
			return nil
		}
		owner := v.Owner()
		if owner == nil {
			if v.IsConstant() {
				return nil
			}
			return graphErrorf("replacement introduces undeclared input %s", v)
		}
		if fg.applies[owner] {
			return nil
		}
		for _, node := range pending {
			if node == owner {
				return nil
			}
		}
		pending = append(pending, owner)
		for _, in := range owner.Inputs() {
			if err := check(in); err != nil {
				return err
			}
		}
		return nil
	}

	if err := check(v); err != nil {
		return err
	}
	// Nothing failed: commit every discovered node.
	for _, node := range pending {
		if !fg.applies[node] {
			fg.registerApply(node)
		}
	}
	fg.variables[v] = true
	return nil
}

// Prune removes Apply nodes no longer on any path to the declared outputs,
// fixing the client index accordingly.
func (fg *FunctionGraph) Prune() {
	live := make(map[*graph.Apply]bool, len(fg.applies))
	var mark func(v *graph.Variable)
	mark = func(v *graph.Variable) {
		owner := v.Owner()
		if owner == nil || live[owner] || !fg.applies[owner] {
			return
		}
		live[owner] = true
		for _, in := range owner.Inputs() {
			mark(in)
		}
	}
	for _, out := range fg.outputs {
		mark(out)
	}

	for node := range fg.applies {
		if !live[node] {
			fg.unregisterApply(node)
		}
	}
}
