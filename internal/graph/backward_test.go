package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripple-ml/ripple/internal/backend/cpu"
	"github.com/ripple-ml/ripple/internal/graph"
	"github.com/ripple-ml/ripple/internal/tensor"
)

func TestBackwardAdditivity(t *testing.T) {
	g := graph.New(cpu.New())

	a := leaf(t, g, []float64{2, 3}, tensor.Shape{2})
	b := leaf(t, g, []float64{4, 5}, tensor.Shape{2})
	c, err := g.Add(a, b)
	require.NoError(t, err)

	require.NoError(t, g.Backward(c))

	// d(a+b)/da = d(a+b)/db = 1.
	assert.Equal(t, []float64{1, 1}, g.Grad(a).Floats())
	assert.Equal(t, []float64{1, 1}, g.Grad(b).Floats())
	assert.Equal(t, []float64{1, 1}, g.Grad(c).Floats())
}

func TestBackwardProductRule(t *testing.T) {
	g := graph.New(cpu.New())

	a := leaf(t, g, []float64{2, 3}, tensor.Shape{2})
	b := leaf(t, g, []float64{4, 5}, tensor.Shape{2})
	c, err := g.Mul(a, b)
	require.NoError(t, err)

	require.NoError(t, g.Backward(c))

	// Each operand's gradient is the other operand's forward value.
	assert.Equal(t, []float64{4, 5}, g.Grad(a).Floats())
	assert.Equal(t, []float64{2, 3}, g.Grad(b).Floats())
}

func TestBackwardNeg(t *testing.T) {
	g := graph.New(cpu.New())

	a := leaf(t, g, []float64{1, -2, 3}, tensor.Shape{3})
	n, err := g.Neg(a)
	require.NoError(t, err)

	require.NoError(t, g.Backward(n))

	assert.Equal(t, []float64{-1, -1, -1}, g.Grad(a).Floats())
}

func TestBackwardSquare(t *testing.T) {
	g := graph.New(cpu.New())

	// y = x * x with the same handle used for both operands.
	x := leaf(t, g, []float64{3}, tensor.Shape{1})
	y, err := g.Mul(x, x)
	require.NoError(t, err)

	require.NoError(t, g.Backward(y))

	// dy/dx = 2x = 6: both operand slots contribute.
	assert.Equal(t, []float64{6}, g.Grad(x).Floats())
}

func TestBackwardFanOutAccumulation(t *testing.T) {
	g := graph.New(cpu.New())

	// p = x*y, q = x*z, r = p + q. x influences r through two paths,
	// so its gradient is the sum of both: y + z.
	x := leaf(t, g, []float64{2, 2}, tensor.Shape{2})
	y := leaf(t, g, []float64{3, 10}, tensor.Shape{2})
	z := leaf(t, g, []float64{4, 20}, tensor.Shape{2})

	p, err := g.Mul(x, y)
	require.NoError(t, err)
	q, err := g.Mul(x, z)
	require.NoError(t, err)
	r, err := g.Add(p, q)
	require.NoError(t, err)

	require.NoError(t, g.Backward(r))

	assert.Equal(t, []float64{7, 30}, g.Grad(x).Floats(), "x.grad must be y.value + z.value")
	assert.Equal(t, []float64{2, 2}, g.Grad(y).Floats())
	assert.Equal(t, []float64{2, 2}, g.Grad(z).Floats())
}

func TestBackwardConcreteScenario(t *testing.T) {
	g := graph.New(cpu.New())

	// x = 2, y = 3, z = x + y = 5, w = z * x = 10.
	x := leaf(t, g, []float64{2}, tensor.Shape{1})
	y := leaf(t, g, []float64{3}, tensor.Shape{1})

	z, err := g.Add(x, y)
	require.NoError(t, err)
	w, err := g.Mul(z, x)
	require.NoError(t, err)

	assert.Equal(t, []float64{5}, g.Value(z).Floats())
	assert.Equal(t, []float64{10}, g.Value(w).Floats())

	require.NoError(t, g.Backward(w))

	// dw/dw = 1; dw/dz = x = 2; dw/dy = 2;
	// dw/dx = 2 (through z) + 5 (direct multiply operand) = 7.
	assert.Equal(t, []float64{1}, g.Grad(w).Floats())
	assert.Equal(t, []float64{2}, g.Grad(z).Floats())
	assert.Equal(t, []float64{7}, g.Grad(x).Floats())
	assert.Equal(t, []float64{2}, g.Grad(y).Floats())
}

func TestTopoSortValidity(t *testing.T) {
	g := graph.New(cpu.New())

	x := leaf(t, g, []float64{2}, tensor.Shape{1})
	y := leaf(t, g, []float64{3}, tensor.Shape{1})
	z, err := g.Add(x, y)
	require.NoError(t, err)
	w, err := g.Mul(z, x)
	require.NoError(t, err)

	order, err := g.TopoSort(w)
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[graph.Node]int, len(order))
	for i, n := range order {
		pos[n] = i
	}

	// Every predecessor strictly precedes its node.
	for _, n := range order {
		for _, p := range g.Preds(n) {
			assert.Less(t, pos[p], pos[n], "predecessor %d of node %d out of order", p, n)
		}
	}

	assert.Equal(t, w, order[len(order)-1], "root is last")

	// Deterministic for a fixed graph.
	again, err := g.TopoSort(w)
	require.NoError(t, err)
	assert.Equal(t, order, again)
}

func TestTopoSortReachableOnly(t *testing.T) {
	g := graph.New(cpu.New())

	a := leaf(t, g, []float64{1}, tensor.Shape{1})
	b := leaf(t, g, []float64{2}, tensor.Shape{1})
	c, err := g.Add(a, b)
	require.NoError(t, err)

	// An independent subgraph that must not appear in c's ordering.
	d := leaf(t, g, []float64{3}, tensor.Shape{1})
	_, err = g.Neg(d)
	require.NoError(t, err)

	order, err := g.TopoSort(c)
	require.NoError(t, err)
	assert.Equal(t, []graph.Node{a, b, c}, order)
}

func TestBackwardAccumulatesAcrossCalls(t *testing.T) {
	g := graph.New(cpu.New())

	x := leaf(t, g, []float64{2}, tensor.Shape{1})
	y := leaf(t, g, []float64{3}, tensor.Shape{1})
	z, err := g.Add(x, y)
	require.NoError(t, err)
	w, err := g.Mul(z, x)
	require.NoError(t, err)

	require.NoError(t, g.Backward(w))
	require.NoError(t, g.Backward(w))

	// Without ZeroGrad the second pass accumulates on top of the first:
	// every leaf gradient doubles.
	assert.Equal(t, []float64{14}, g.Grad(x).Floats())
	assert.Equal(t, []float64{4}, g.Grad(y).Floats())
}

func TestZeroGrad(t *testing.T) {
	g := graph.New(cpu.New())

	x := leaf(t, g, []float64{2}, tensor.Shape{1})
	y := leaf(t, g, []float64{3}, tensor.Shape{1})
	w, err := g.Mul(x, y)
	require.NoError(t, err)

	require.NoError(t, g.Backward(w))
	g.ZeroGrad()

	assert.Equal(t, []float64{0}, g.Grad(x).Floats())
	assert.Equal(t, []float64{0}, g.Grad(y).Floats())
	assert.Equal(t, []float64{0}, g.Grad(w).Floats())

	// A fresh pass after ZeroGrad matches a first pass.
	require.NoError(t, g.Backward(w))
	assert.Equal(t, []float64{3}, g.Grad(x).Floats())
	assert.Equal(t, []float64{2}, g.Grad(y).Floats())
}

func TestGradShapeInvariant(t *testing.T) {
	g := graph.New(cpu.New())

	a := leaf(t, g, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := leaf(t, g, []float64{5, 6, 7, 8}, tensor.Shape{2, 2})
	c, err := g.Add(a, b)
	require.NoError(t, err)
	d, err := g.Mul(c, a)
	require.NoError(t, err)
	e, err := g.Neg(d)
	require.NoError(t, err)

	checkShapes := func() {
		for n := graph.Node(0); int(n) < g.Len(); n++ {
			assert.True(t, g.Grad(n).Shape().Equal(g.Value(n).Shape()),
				"node %d: grad shape %v != value shape %v", n, g.Grad(n).Shape(), g.Value(n).Shape())
		}
	}

	checkShapes()
	require.NoError(t, g.Backward(e))
	checkShapes()
}

func TestBackwardFloat32(t *testing.T) {
	g := graph.New(cpu.New())

	backend := g.Backend()
	av, err := tensor.FromSlice([]float32{2.5, 3.5}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	bv, err := tensor.FromSlice([]float32{4, 5}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	a := g.Leaf(av.Raw())
	b := g.Leaf(bv.Raw())
	c, err := g.Mul(a, b)
	require.NoError(t, err)

	require.NoError(t, g.Backward(c))

	assert.Equal(t, []float64{4, 5}, g.Grad(a).Floats())
	assert.Equal(t, []float64{2.5, 3.5}, g.Grad(b).Floats())
}
