// Copyright 2026 Ripple ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for the reverse-mode automatic
// differentiation engine.
//
// A Graph is an arena of tensor-valued nodes referenced by integer
// handles. Composing nodes with Add, Mul, Neg and AddScalar builds a DAG;
// Backward walks it in reverse topological order and accumulates
// gradients into predecessors via the chain rule.
//
// Example:
//
//	backend := cpu.New()
//	g := graph.New(backend)
//
//	xv, _ := tensor.FromSlice([]float64{2}, tensor.Shape{1}, backend)
//	yv, _ := tensor.FromSlice([]float64{3}, tensor.Shape{1}, backend)
//
//	x := g.Leaf(xv.Raw())
//	y := g.Leaf(yv.Raw())
//	z, _ := g.Add(x, y) // z = x + y
//	w, _ := g.Mul(z, x) // w = z * x
//
//	_ = g.Backward(w)
//	fmt.Println(g.Grad(x).Floats()) // dw/dx = 7
package graph

import (
	"github.com/ripple-ml/ripple/internal/graph"
	"github.com/ripple-ml/ripple/internal/tensor"
)

// Graph owns the node arena and the compute backend.
type Graph = graph.Graph

// Node is an integer handle into a graph's arena.
type Node = graph.Node

// Op is the enumerated kind of the operation that produced a node.
type Op = graph.Op

// Operation kinds.
const (
	OpLeaf Op = graph.OpLeaf
	OpAdd  Op = graph.OpAdd
	OpMul  Op = graph.OpMul
	OpNeg  Op = graph.OpNeg
)

// Errors reported by graph construction and traversal.
var (
	ErrShapeMismatch = graph.ErrShapeMismatch
	ErrDanglingNode  = graph.ErrDanglingNode
)

// New creates an empty graph computing on the given backend.
func New(backend tensor.Backend) *Graph {
	return graph.New(backend)
}
