package graph

import "fmt"

// TypeError reports that an operation's type-inference contract rejected
// its input types. It is raised synchronously at graph-construction time.
type TypeError struct {
	Op  string // operation name, empty for bare unification failures
	Msg string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("type error in %s: %s", e.Op, e.Msg)
	}
	return "type error: " + e.Msg
}

func typeErrorf(op, format string, args ...any) *TypeError {
	return &TypeError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NewTypeError builds a TypeError attributed to the named operation.
func NewTypeError(op, format string, args ...any) *TypeError {
	return typeErrorf(op, format, args...)
}

// ShapeError reports that a concrete runtime value violates the symbolic
// type it is bound to: wrong element kind, wrong rank, or a size other
// than 1 on a broadcastable axis. It is fatal to a single call only.
type ShapeError struct {
	Variable *Variable // the input slot the value was bound to, may be nil
	Msg      string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Variable != nil {
		return fmt.Sprintf("shape error for %s: %s", e.Variable, e.Msg)
	}
	return "shape error: " + e.Msg
}
