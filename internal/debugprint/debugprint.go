// Package debugprint renders symbolic expressions in prefix form for
// inspection and test output, e.g. "Add(Mul(x, y), Exp(z))".
package debugprint

import (
	"fmt"
	"strings"

	"github.com/HelloBroBro/pytensor/internal/graph"
)

// Str renders the expression tree rooted at v. Named variables print
// their name, constants print their value type, and owned variables
// expand into "Op(args...)". Shared subexpressions are expanded at every
// occurrence.
func Str(v *graph.Variable) string {
	var b strings.Builder
	writeVar(&b, v)
	return b.String()
}

func writeVar(b *strings.Builder, v *graph.Variable) {
	owner := v.Owner()
	if owner == nil {
		b.WriteString(v.String())
		return
	}
	b.WriteString(owner.Op().Name())
	if len(owner.Outputs()) > 1 {
		fmt.Fprintf(b, ".%d", v.OwnerIndex())
	}
	b.WriteByte('(')
	for i, in := range owner.Inputs() {
		if i > 0 {
			b.WriteString(", ")
		}
		writeVar(b, in)
	}
	b.WriteByte(')')
}
