package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// ZerosLike creates a zero-filled RawTensor with the same shape, dtype and
// device as the reference tensor. Used by the graph for fresh gradient
// accumulators.
func ZerosLike(r *RawTensor) *RawTensor {
	out, err := NewRaw(r.Shape(), r.DType(), r.Device())
	if err != nil {
		panic(fmt.Sprintf("zeros like: %v", err)) // reference tensor already validated its shape
	}
	return out
}

// OnesLike creates a one-filled RawTensor with the same shape, dtype and
// device as the reference tensor.
func OnesLike(r *RawTensor) *RawTensor {
	return FullLike(r, 1)
}

// FullLike creates a RawTensor shaped like the reference, filled with v.
func FullLike(r *RawTensor, v float64) *RawTensor {
	out := ZerosLike(r)
	fillRaw(out, v)
	return out
}

// FullRaw creates a RawTensor of the given shape filled with v.
// Used for scalar constant leaves (shape {1}).
func FullRaw(shape Shape, v float64, dtype DataType, device Device) (*RawTensor, error) {
	out, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	fillRaw(out, v)
	return out, nil
}

func fillRaw(r *RawTensor, v float64) {
	switch r.DType() {
	case Float32:
		data := r.AsFloat32()
		for i := range data {
			data[i] = float32(v)
		}
	case Float64:
		data := r.AsFloat64()
		for i := range data {
			data[i] = v
		}
	default:
		panic(fmt.Sprintf("fill: unsupported dtype %s", r.DType()))
	}
}
