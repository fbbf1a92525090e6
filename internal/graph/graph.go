// Package graph implements the reverse-mode automatic differentiation engine.
//
// A Graph is a dynamically built DAG of tensor-valued nodes. Composing
// nodes with Add, Mul, Neg and AddScalar records the producing operation
// and its operands; Backward then walks the DAG in reverse topological
// order and accumulates gradients into predecessors via the chain rule.
//
// Nodes live in an arena owned by the graph and are referenced by integer
// handles, never by pointers. Ownership is therefore trivial: every node
// lives exactly as long as its graph, there are no reference cycles, and
// a handle that does not index the arena is a hard ErrDanglingNode rather
// than a silently skipped edge.
//
// Usage:
//
//	g := graph.New(cpu.New())
//	x := g.Leaf(xv.Raw())
//	y := g.Leaf(yv.Raw())
//	z, _ := g.Add(x, y)
//	w, _ := g.Mul(z, x)
//	_ = g.Backward(w)
//	fmt.Println(g.Grad(x).Floats())
package graph

import (
	"fmt"

	"github.com/ripple-ml/ripple/internal/tensor"
)

// Node is an integer handle into a graph's arena. Handles are only
// meaningful for the graph that issued them.
type Node int

// node is one arena entry. value, op and preds are immutable after
// construction; only grad is mutated, and only by the backward driver
// and ZeroGrad.
type node struct {
	value *tensor.RawTensor
	grad  *tensor.RawTensor
	op    Op
	preds []Node
}

// Graph owns the node arena and the compute backend.
// A Graph is not safe for concurrent use.
type Graph struct {
	backend tensor.Backend
	nodes   []node
}

// New creates an empty graph computing on the given backend.
func New(backend tensor.Backend) *Graph {
	return &Graph{
		backend: backend,
		nodes:   make([]node, 0, 16),
	}
}

// Backend returns the compute backend.
func (g *Graph) Backend() tensor.Backend {
	return g.backend
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Leaf appends an input node holding the given value, with a zero
// gradient of matching shape and no predecessors. Any well-formed tensor
// is accepted.
func (g *Graph) Leaf(value *tensor.RawTensor) Node {
	return g.append(value, OpLeaf, nil)
}

// Constant appends a fresh shape-{1} leaf holding the scalar v.
func (g *Graph) Constant(v float64, dtype tensor.DataType) Node {
	raw, err := tensor.FullRaw(tensor.Shape{1}, v, dtype, g.backend.Device())
	if err != nil {
		panic(fmt.Sprintf("constant: %v", err)) // Shape{1} is always valid
	}
	return g.Leaf(raw)
}

// Add appends the node a + b (elementwise).
//
// Operand shapes must be identical; no implicit reconciliation is
// performed. The check runs before any node is created, so a failed Add
// leaves the graph unchanged.
func (g *Graph) Add(a, b Node) (Node, error) {
	av, bv, err := g.binaryOperands("add", a, b)
	if err != nil {
		return 0, err
	}
	return g.append(g.backend.Add(av, bv), OpAdd, []Node{a, b}), nil
}

// Mul appends the node a * b (elementwise). Same shape precondition as Add.
func (g *Graph) Mul(a, b Node) (Node, error) {
	av, bv, err := g.binaryOperands("mul", a, b)
	if err != nil {
		return 0, err
	}
	return g.append(g.backend.Mul(av, bv), OpMul, []Node{a, b}), nil
}

// Neg appends the node -a (elementwise).
//
// Negation carries its own backward rule rather than delegating to
// Mul(a, Constant(-1)): the multiply encoding requires shape equality and
// would only work for single-element operands.
func (g *Graph) Neg(a Node) (Node, error) {
	if err := g.check(a); err != nil {
		return 0, err
	}
	return g.append(g.backend.Neg(g.nodes[a].value), OpNeg, []Node{a}), nil
}

// AddScalar wraps the raw number s into a shape-{1} leaf of a's dtype and
// delegates to Add. The shape precondition is inherited: unless a is
// itself single-element, AddScalar fails with ErrShapeMismatch.
func (g *Graph) AddScalar(a Node, s float64) (Node, error) {
	if err := g.check(a); err != nil {
		return 0, err
	}
	c := g.Constant(s, g.nodes[a].value.DType())
	return g.Add(a, c)
}

// Value returns the forward value of n. Panics on an invalid handle;
// use the operation constructors for error-returning validation.
func (g *Graph) Value(n Node) *tensor.RawTensor {
	return g.nodes[n].value
}

// Grad returns the accumulated gradient of n.
func (g *Graph) Grad(n Node) *tensor.RawTensor {
	return g.nodes[n].grad
}

// OpOf returns the operation kind that produced n.
func (g *Graph) OpOf(n Node) Op {
	return g.nodes[n].op
}

// Preds returns the predecessor handles of n, in operand order.
// The returned slice must not be modified.
func (g *Graph) Preds(n Node) []Node {
	return g.nodes[n].preds
}

// NodeString renders n for debugging: value, gradient and operation
// label, in that order. Write-only diagnostic output, not a format.
func (g *Graph) NodeString(n Node) string {
	nd := &g.nodes[n]
	return fmt.Sprintf("Node(value=%v, grad=%v, op=%q)", nd.value.Floats(), nd.grad.Floats(), nd.op)
}

// append adds one arena entry with a zero gradient accumulator and
// returns its handle.
func (g *Graph) append(value *tensor.RawTensor, op Op, preds []Node) Node {
	g.nodes = append(g.nodes, node{
		value: value,
		grad:  tensor.ZerosLike(value),
		op:    op,
		preds: preds,
	})
	return Node(len(g.nodes) - 1)
}

// binaryOperands validates handles and the equal-shape precondition of a
// binary elementwise operation and returns the operand values.
func (g *Graph) binaryOperands(op string, a, b Node) (*tensor.RawTensor, *tensor.RawTensor, error) {
	if err := g.check(a); err != nil {
		return nil, nil, err
	}
	if err := g.check(b); err != nil {
		return nil, nil, err
	}

	av, bv := g.nodes[a].value, g.nodes[b].value
	if !av.Shape().Equal(bv.Shape()) {
		return nil, nil, fmt.Errorf("%w: %s operands have shapes %v and %v", ErrShapeMismatch, op, av.Shape(), bv.Shape())
	}
	return av, bv, nil
}

// check validates that n indexes this graph's arena.
func (g *Graph) check(n Node) error {
	if n < 0 || int(n) >= len(g.nodes) {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrDanglingNode, n, len(g.nodes))
	}
	return nil
}
