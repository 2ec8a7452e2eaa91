package compile

import (
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"

	"github.com/HelloBroBro/pytensor/internal/fgraph"
	"github.com/HelloBroBro/pytensor/internal/graph"
)

// Signature derives the cache key for a (graph, mode) pair: a blake3
// digest of a canonical serialization of the traced container. Two
// structurally identical graphs (same operations, topology and types,
// byte-equal constants) produce the same signature regardless of
// Variable identities, so equivalent expressions built twice share one
// compilation.
func Signature(fg *fgraph.FunctionGraph, mode Mode) string {
	local := make(map[*graph.Variable]int)

	var sb strings.Builder
	sb.WriteString("inputs[")
	for i, in := range fg.Inputs() {
		if i > 0 {
			sb.WriteByte(',')
		}
		local[in] = len(local)
		sb.WriteString(in.Type().String())
	}
	sb.WriteString("];")

	ref := func(v *graph.Variable) string {
		if v.IsConstant() {
			sum := blake3.Sum256(v.Value().Data())
			return fmt.Sprintf("const{%s,%v,%s}", v.Type(), v.Value().Shape(), hex.EncodeToString(sum[:]))
		}
		return fmt.Sprintf("%%%d", local[v])
	}

	for _, node := range fg.Toposort() {
		sb.WriteString(node.Op().Signature())
		sb.WriteByte('(')
		for i, in := range node.Inputs() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(ref(in))
		}
		sb.WriteString(")->(")
		for i, out := range node.Outputs() {
			if i > 0 {
				sb.WriteByte(',')
			}
			local[out] = len(local)
			fmt.Fprintf(&sb, "%%%d", local[out])
		}
		sb.WriteString(");")
	}

	sb.WriteString("outputs[")
	for i, out := range fg.Outputs() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(ref(out))
	}
	sb.WriteString("];")
	sb.WriteString(mode.key())

	sum := blake3.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
