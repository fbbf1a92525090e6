// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"

	"github.com/ripple-ml/ripple/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs elementwise addition. Operand shapes must be equal; the
// graph validates this before dispatching, so a mismatch here is a
// programmer error.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("add", a, b)
	addVectorized(result, a, b)
	return result
}

// Mul performs elementwise multiplication. Operand shapes must be equal.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("mul", a, b)
	mulVectorized(result, a, b)
	return result
}

// Neg performs elementwise negation.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("neg: failed to create result tensor: %v", err))
	}
	negVectorized(result, x)
	return result
}

// newResult allocates the result tensor for a binary elementwise op,
// enforcing the equal-shape invariant.
func (cpu *CPUBackend) newResult(op string, a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch: %v vs %v", op, a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}

	result, err := tensor.NewRaw(a.Shape(), a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}
