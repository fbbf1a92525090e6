package graph

import (
	"github.com/ripple-ml/ripple/internal/tensor"
)

// TopoSort returns a topological order of the subgraph reachable from
// root: depth-first from the root, predecessors visited before the node
// itself, each node visited at most once. Every node appears strictly
// after all of its predecessors (leaves first, root last), and ties are
// broken by predecessor-list order, so the result is deterministic for a
// fixed graph.
func (g *Graph) TopoSort(root Node) ([]Node, error) {
	if err := g.check(root); err != nil {
		return nil, err
	}

	visited := make([]bool, len(g.nodes))
	order := make([]Node, 0, len(g.nodes))

	var visit func(Node)
	visit = func(n Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, p := range g.nodes[n].preds {
			visit(p)
		}
		order = append(order, n)
	}
	visit(root)

	return order, nil
}

// Backward runs reverse-mode differentiation from root.
//
// The pass seeds the root with a gradient of ones (the derivative of the
// root with respect to itself) and executes each reachable node's
// backward rule exactly once in reverse topological order, summing
// contributions into predecessors. The per-pass flow is kept separate
// from the persistent grad accumulators and added into them at the end:
// a second Backward without ZeroGrad therefore accumulates exactly one
// more full gradient on top of the previous results (doubling every
// reachable node's grad), rather than compounding stale interior
// gradients into the leaves. The accumulation across calls is the
// documented semantic, not a bug: callers wanting fresh gradients must
// call ZeroGrad between independent passes.
//
// Afterwards every reachable node's grad holds the partial derivative of
// the root with respect to that node, summed over all paths through
// which it influences the root.
func (g *Graph) Backward(root Node) error {
	order, err := g.TopoSort(root)
	if err != nil {
		return err
	}

	// Per-pass gradient flow, indexed by handle. Every node in the
	// order receives flow before its own step runs: the root is seeded
	// here, and any other reachable node has a consumer that precedes
	// it in the reverse iteration.
	flow := make([]*tensor.RawTensor, len(g.nodes))
	flow[root] = tensor.OnesLike(g.nodes[root].value)

	for i := len(order) - 1; i >= 0; i-- {
		g.stepBackward(order[i], flow)
	}

	for _, n := range order {
		g.nodes[n].grad = g.backend.Add(g.nodes[n].grad, flow[n])
	}
	return nil
}

// stepBackward applies the local chain rule of one node, adding its
// contribution into each predecessor's flow. This is the single
// exhaustive dispatch over the operation kinds; each case reaches only
// one hop, from the node to its direct operands.
func (g *Graph) stepBackward(n Node, flow []*tensor.RawTensor) {
	nd := &g.nodes[n]
	grad := flow[n]

	switch nd.op {
	case OpLeaf:
		// No predecessors, nothing to propagate.

	case OpAdd:
		// d(a+b)/da = d(a+b)/db = 1: the gradient flows unchanged.
		g.accumulate(flow, nd.preds[0], grad)
		g.accumulate(flow, nd.preds[1], grad)

	case OpMul:
		// d(a*b)/da = b, d(a*b)/db = a: each operand's local derivative
		// is the other operand's forward value.
		a, b := nd.preds[0], nd.preds[1]
		g.accumulate(flow, a, g.backend.Mul(grad, g.nodes[b].value))
		g.accumulate(flow, b, g.backend.Mul(grad, g.nodes[a].value))

	case OpNeg:
		// d(-a)/da = -1.
		g.accumulate(flow, nd.preds[0], g.backend.Neg(grad))

	default:
		panic("stepBackward: unknown op kind")
	}
}

// accumulate adds contrib into n's flow. Always addition, never
// overwrite: a node may receive contributions from several downstream
// consumers (fan-out), and those must sum.
func (g *Graph) accumulate(flow []*tensor.RawTensor, n Node, contrib *tensor.RawTensor) {
	if flow[n] == nil {
		flow[n] = contrib
		return
	}
	flow[n] = g.backend.Add(flow[n], contrib)
}

// ZeroGrad resets every node's gradient accumulator to zeros.
func (g *Graph) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = tensor.ZerosLike(g.nodes[i].value)
	}
}
