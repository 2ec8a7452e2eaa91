package fgraph

import "fmt"

// GraphError reports a structural problem with a function graph: a cycle,
// an undeclared free variable, or an invalid replacement. Construction-time
// GraphErrors are raised before any rewriting happens.
type GraphError struct {
	Msg string
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	return "graph error: " + e.Msg
}

func graphErrorf(format string, args ...any) *GraphError {
	return &GraphError{Msg: fmt.Sprintf(format, args...)}
}

// NewGraphError builds a GraphError with a formatted message.
func NewGraphError(format string, args ...any) *GraphError {
	return &GraphError{Msg: fmt.Sprintf(format, args...)}
}
