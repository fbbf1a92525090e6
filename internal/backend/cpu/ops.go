package cpu

import (
	"github.com/ripple-ml/ripple/internal/tensor"
)

// addVectorized performs vectorized addition: result = a + b.
// Requires: a.Shape().Equal(b.Shape()).
func addVectorized(result, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		addVectorizedFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		addVectorizedFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	default:
		panic("addVectorized: unsupported dtype")
	}
}

// mulVectorized performs vectorized multiplication: result = a * b.
// Requires: a.Shape().Equal(b.Shape()).
func mulVectorized(result, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		mulVectorizedFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		mulVectorizedFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	default:
		panic("mulVectorized: unsupported dtype")
	}
}

// negVectorized performs vectorized negation: result = -x.
func negVectorized(result, x *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		negVectorizedFloat32(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		negVectorizedFloat64(result.AsFloat64(), x.AsFloat64())
	default:
		panic("negVectorized: unsupported dtype")
	}
}

func addVectorizedFloat32(result, a, b []float32) {
	for i := range result {
		result[i] = a[i] + b[i]
	}
}

func addVectorizedFloat64(result, a, b []float64) {
	for i := range result {
		result[i] = a[i] + b[i]
	}
}

func mulVectorizedFloat32(result, a, b []float32) {
	for i := range result {
		result[i] = a[i] * b[i]
	}
}

func mulVectorizedFloat64(result, a, b []float64) {
	for i := range result {
		result[i] = a[i] * b[i]
	}
}

func negVectorizedFloat32(result, x []float32) {
	for i := range result {
		result[i] = -x[i]
	}
}

func negVectorizedFloat64(result, x []float64) {
	for i := range result {
		result[i] = -x[i]
	}
}
