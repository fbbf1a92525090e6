package tensor

// Backend defines the interface the autodiff engine requires from a
// compute backend. Backends implement the elementwise arithmetic the
// graph composes; shape equality of binary operands is validated by the
// graph before a backend is invoked, so implementations may assume it.
//
// Implementations must allocate fresh result tensors and must never
// modify their operands; the backward driver shares gradient tensors
// between accumulation slots on that assumption.
type Backend interface {
	// Elementwise binary operations (operands have equal shapes).
	Add(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Elementwise unary operations.
	Neg(x *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
