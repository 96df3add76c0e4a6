package graph

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity id is not present in the
// graph. An absent entity is a normal outcome for callers, not a failure of
// the engine; callers decide whether to skip or report it.
var ErrNotFound = errors.New("entity not found")

// ErrInvalidArgument is returned when an operation is called with parameters
// that make no sense (negative traversal depth, non-positive search limit).
// The operation rejects the call before doing any work.
var ErrInvalidArgument = errors.New("invalid argument")

// LoadError reports a malformed or inconsistent graph document: a duplicate
// entity/relationship id or a relationship endpoint that does not resolve to
// an entity. A LoadError aborts the load entirely; no partial graph is ever
// returned.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string {
	return "graph load failed: " + e.Reason
}

func loadErrorf(format string, args ...any) error {
	return &LoadError{Reason: fmt.Sprintf(format, args...)}
}
