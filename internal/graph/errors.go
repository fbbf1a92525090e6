package graph

import "errors"

// Errors reported by graph construction and traversal.
var (
	// ErrShapeMismatch is returned when the operands of a binary
	// elementwise operation do not have identical shapes. The check runs
	// eagerly at operation-construction time, before any node is added
	// to the graph.
	ErrShapeMismatch = errors.New("graph: shape mismatch")

	// ErrDanglingNode is returned when a handle does not refer to a node
	// of this graph (out of range, or issued by a different graph of a
	// different size). Handles index the graph's arena, so a valid
	// handle can never dangle while the graph is alive.
	ErrDanglingNode = errors.New("graph: dangling node handle")
)
