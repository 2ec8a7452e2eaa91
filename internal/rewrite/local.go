package rewrite

import (
	"go.uber.org/multierr"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// NodeRule is a local pattern: given one Apply node it either returns
// replacement Variables for the node's outputs, or nil when the pattern
// does not match.
type NodeRule interface {
	Name() string
	Rewrite(fg *fgraph.FunctionGraph, node *graph.Apply) ([]*graph.Variable, error)
}

// Local adapts a NodeRule into a whole-graph pass that scans every live
// node, applies the rule where it matches, and re-scans the nodes each
// replacement introduces instead of restarting.
func Local(rule NodeRule) Rewriter {
	return &localPass{rule: rule}
}

type localPass struct {
	rule NodeRule
}

func (p *localPass) Name() string {
	return p.rule.Name()
}

func (p *localPass) Apply(fg *fgraph.FunctionGraph) (bool, error) {
	queue := fg.LiveApplies()
	changed := false
	var errs error

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if !fg.HasApply(node) {
			continue // Removed by an earlier replacement.
		}

		repls, err := p.rule.Rewrite(fg, node)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if repls == nil {
			continue
		}

		ok := true
		for i, out := range node.Outputs() {
			if repls[i] == out {
				continue
			}
			if err := fg.Replace(out, repls[i], fgraph.Permissive); err != nil {
				// Replace is atomic; record and move on.
				errs = multierr.Append(errs, err)
				ok = false
				break
			}
			changed = true
		}
		if !ok {
			continue
		}
		for _, repl := range repls {
			queue = append(queue, introducedNodes(fg, repl)...)
		}
	}
	return changed, errs
}

// introducedNodes collects the live producing nodes of v's ancestry so a
// local pass can re-scan a freshly imported replacement subgraph.
func introducedNodes(fg *fgraph.FunctionGraph, v *graph.Variable) []*graph.Apply {
	var nodes []*graph.Apply
	seen := make(map[*graph.Apply]bool)
	var walk func(v *graph.Variable)
	walk = func(v *graph.Variable) {
		owner := v.Owner()
		if owner == nil || seen[owner] || !fg.HasApply(owner) {
			return
		}
		seen[owner] = true
		nodes = append(nodes, owner)
		for _, in := range owner.Inputs() {
			walk(in)
		}
	}
	walk(v)
	return nodes
}
