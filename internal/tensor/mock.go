package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs elementwise addition.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Mul performs elementwise multiplication.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Neg performs elementwise negation.
func (m *MockBackend) Neg(x *RawTensor) *RawTensor {
	result := ZerosLike(x)
	src := x.Floats()
	m.store(result, func(i int) float64 { return -src[i] })
	return result
}

// elementWise performs a binary elementwise operation.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("mock: shape mismatch: %v vs %v", a.Shape(), b.Shape()))
	}

	result := ZerosLike(a)
	aData := a.Floats()
	bData := b.Floats()
	m.store(result, func(i int) float64 { return op(aData[i], bData[i]) })
	return result
}

// store writes f(i) into every element of r, converting to r's dtype.
func (m *MockBackend) store(r *RawTensor, f func(int) float64) {
	switch r.DType() {
	case Float32:
		dst := r.AsFloat32()
		for i := range dst {
			dst[i] = float32(f(i))
		}
	case Float64:
		dst := r.AsFloat64()
		for i := range dst {
			dst[i] = f(i)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", r.DType()))
	}
}
