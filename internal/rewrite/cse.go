package rewrite

import (
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// CSE merges Apply nodes that provably compute the same values: equal
// operation signatures applied to identical inputs. Constants count as
// identical when their element kind, shape and bytes match.
func CSE() Rewriter {
	return csePass{}
}

type csePass struct{}

func (csePass) Name() string { return "cse" }

func (csePass) Apply(fg *fgraph.FunctionGraph) (bool, error) {
	changed := false
	// One linear sweep in dependency order: by the time a node is keyed,
	// its inputs are already canonical representatives, so equal subtrees
	// collapse bottom-up in a single pass.
	canonical := make(map[string]*graph.Apply)
	for _, node := range fg.Toposort() {
		if !fg.HasApply(node) {
			continue // Merged away while sweeping.
		}
		key := nodeKey(node)
		rep, ok := canonical[key]
		if !ok {
			canonical[key] = node
			continue
		}
		merged := true
		for i, out := range node.Outputs() {
			if err := fg.Replace(out, rep.Outputs()[i], fgraph.Strict); err != nil {
				merged = false
				break
			}
		}
		if merged {
			changed = true
		}
	}
	return changed, nil
}

// nodeKey canonicalizes a node by operation signature and input identity.
func nodeKey(node *graph.Apply) string {
	var sb strings.Builder
	sb.WriteString(node.Op().Signature())
	sb.WriteByte('(')
	for i, in := range node.Inputs() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(variableKey(in))
	}
	sb.WriteByte(')')
	return sb.String()
}

func variableKey(v *graph.Variable) string {
	if v.IsConstant() {
		sum := blake3.Sum256(v.Value().Data())
		return fmt.Sprintf("const:%s:%v:%s", v.Type(), v.Value().Shape(), hex.EncodeToString(sum[:8]))
	}
	return fmt.Sprintf("var:%d", v.ID())
}
