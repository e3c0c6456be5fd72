package tensor

import (
	"math/rand"

	"github.com/pkg/errors"
)

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	copy(values[T](raw), data)
	return raw, nil
}

// FromScalar creates a 0-dimensional tensor holding a single value.
func FromScalar[T Float](v T) *RawTensor {
	var dummy T
	raw, err := NewRaw(Shape{}, inferDataType(dummy))
	if err != nil {
		panic(err) // empty shape is always valid
	}
	values[T](raw)[0] = v
	return raw
}

// Zeros creates a tensor filled with zeros.
// Panics on an invalid shape; use NewRaw to handle the error.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		panic(err)
	}
	return raw
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *RawTensor {
	return Full(shape, 1, dtype)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64, dtype DataType) *RawTensor {
	raw := Zeros(shape, dtype)
	switch dtype {
	case Float32:
		fill(raw.AsFloat32(), float32(value))
	default:
		fill(raw.AsFloat64(), value)
	}
	return raw
}

// ZerosLike creates a zero tensor with the same shape and dtype as t.
func ZerosLike(t *RawTensor) *RawTensor {
	return Zeros(t.Shape(), t.DType())
}

// OnesLike creates an all-ones tensor with the same shape and dtype as t.
// This is the seed gradient convention: the derivative of x with respect to
// itself is 1 elementwise.
func OnesLike(t *RawTensor) *RawTensor {
	return Ones(t.Shape(), t.DType())
}

// Randn creates a tensor with values drawn from the standard normal
// distribution. Uses math/rand, which is appropriate for ML initialization.
func Randn(shape Shape, dtype DataType) *RawTensor {
	raw := Zeros(shape, dtype)
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(rand.NormFloat64())
		}
	default:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = rand.NormFloat64()
		}
	}
	return raw
}

func fill[T Float](data []T, value T) {
	for i := range data {
		data[i] = value
	}
}
