// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for dense numeric arrays in the
// Ember ML framework.
//
// The package defines the core value types:
//   - RawTensor: dense row-major array with shape, strides, and dtype
//   - Shape, DataType: core type definitions
//
// plus the broadcast-aware numeric kernels the autodiff layer builds on.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
//	y := tensor.Ones(tensor.Shape{3}, tensor.Float64)
//	z := tensor.Add(x, y)
package tensor

import "github.com/ember-ml/ember/internal/tensor"

// Float is a constraint for supported tensor element types.
type Float = tensor.Float

// DataType represents the underlying element type of a tensor.
type DataType = tensor.DataType

// Element type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} is a 3-D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the dense tensor representation.
type RawTensor = tensor.RawTensor

// BroadcastShapes implements NumPy-style broadcasting rules over two shapes.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// NewRaw creates a new zero-initialized tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromSlice creates a tensor from a Go slice, copying the data.
func FromSlice[T Float](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromScalar creates a 0-dimensional tensor holding a single value.
func FromScalar[T Float](v T) *RawTensor {
	return tensor.FromScalar(v)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *RawTensor {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64, dtype DataType) *RawTensor {
	return tensor.Full(shape, value, dtype)
}

// Randn creates a tensor with standard-normal random values.
func Randn(shape Shape, dtype DataType) *RawTensor {
	return tensor.Randn(shape, dtype)
}

// ZerosLike creates a zero tensor shaped like t.
func ZerosLike(t *RawTensor) *RawTensor {
	return tensor.ZerosLike(t)
}

// OnesLike creates an all-ones tensor shaped like t.
func OnesLike(t *RawTensor) *RawTensor {
	return tensor.OnesLike(t)
}
