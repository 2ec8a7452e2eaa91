package fgraph

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/HelloBroBro/pytensor/internal/graph"
)

// Toposort returns the live Apply nodes in an order where every node
// appears after the producers of all its inputs. Ties are broken by
// insertion order, so the schedule is deterministic. It never fails: the
// container rejects any mutation that would introduce a cycle.
func (fg *FunctionGraph) Toposort() []*graph.Apply {
	// Remaining input-producer counts per node, restricted to live nodes.
	blocked := make(map[*graph.Apply]int, len(fg.applies))
	dependents := make(map[*graph.Apply][]*graph.Apply, len(fg.applies))
	for node := range fg.applies {
		count := 0
		for _, in := range node.Inputs() {
			owner := in.Owner()
			if owner != nil && fg.applies[owner] {
				count++
				dependents[owner] = append(dependents[owner], node)
			}
		}
		blocked[node] = count
	}

	ready := make([]*graph.Apply, 0, len(fg.applies))
	for node, count := range blocked {
		if count == 0 {
			ready = append(ready, node)
		}
	}

	order := make([]*graph.Apply, 0, len(fg.applies))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			return fg.seq[ready[i]] < fg.seq[ready[j]]
		})
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)
		for _, dep := range dependents[node] {
			blocked[dep]--
			if blocked[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(fg.applies) {
		// Unreachable: Replace and New reject cycles.
		panic("fgraph: cycle in live node set")
	}
	return order
}

// LiveApplies returns the live Apply nodes in insertion order.
func (fg *FunctionGraph) LiveApplies() []*graph.Apply {
	nodes := maps.Keys(fg.applies)
	sort.Slice(nodes, func(i, j int) bool {
		return fg.seq[nodes[i]] < fg.seq[nodes[j]]
	})
	return nodes
}
