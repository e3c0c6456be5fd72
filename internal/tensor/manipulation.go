package tensor

import "fmt"

// Reshape returns a tensor with the same elements and a new shape.
// The element count must be preserved.
func Reshape(t *RawTensor, shape Shape) *RawTensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("Reshape: %v", err))
	}
	if shape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("Reshape: cannot reshape %v (%d elements) into %v (%d elements)",
			t.Shape(), t.NumElements(), shape, shape.NumElements()))
	}

	out := t.Clone()
	out.shape = shape.Clone()
	out.stride = shape.ComputeStrides()
	return out
}

// Transpose permutes the axes of a tensor.
//
// With no axes given the dimension order is reversed (the matrix transpose
// for 2-D tensors). Otherwise axes must be a permutation of [0, ndim).
func Transpose(t *RawTensor, axes ...int) *RawTensor {
	ndim := t.NDim()
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("Transpose: expected %d axes, got %d", ndim, len(axes)))
	}

	seen := make([]bool, ndim)
	outShape := make(Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("Transpose: axes %v is not a permutation of [0, %d)", axes, ndim))
		}
		seen[ax] = true
		outShape[i] = t.Shape()[ax]
	}

	out := Zeros(outShape, t.DType())
	switch t.DType() {
	case Float32:
		transposeKernel(t, out, axes, t.AsFloat32(), out.AsFloat32())
	default:
		transposeKernel(t, out, axes, t.AsFloat64(), out.AsFloat64())
	}
	return out
}

func transposeKernel[T Float](src, dst *RawTensor, axes []int, sv, dv []T) {
	dstStrides := dst.Strides()
	srcStrides := src.Strides()
	rank := len(axes)

	for i := range dv {
		srcIdx := 0
		rem := i
		for d := 0; d < rank; d++ {
			coord := rem / dstStrides[d]
			rem %= dstStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		dv[i] = sv[srcIdx]
	}
}

// InversePermutation returns the permutation that undoes axes.
// Applying Transpose with the result reverses a Transpose with axes.
func InversePermutation(axes []int) []int {
	inv := make([]int, len(axes))
	for i, ax := range axes {
		inv[ax] = i
	}
	return inv
}

// BroadcastTo expands a tensor to a broadcast-compatible target shape by
// repeating elements along size-1 (or missing leading) dimensions.
func BroadcastTo(t *RawTensor, shape Shape) *RawTensor {
	combined, _, err := BroadcastShapes(t.Shape(), shape)
	if err != nil || !combined.Equal(shape) {
		panic(fmt.Sprintf("BroadcastTo: cannot broadcast %v to %v", t.Shape(), shape))
	}

	out := Zeros(shape, t.DType())
	switch t.DType() {
	case Float32:
		broadcastKernel(t, out, t.AsFloat32(), out.AsFloat32())
	default:
		broadcastKernel(t, out, t.AsFloat64(), out.AsFloat64())
	}
	return out
}

func broadcastKernel[T Float](src, dst *RawTensor, sv, dv []T) {
	rank := dst.NDim()
	dstStrides := dst.Strides()
	srcStrides := broadcastStrides(src.Shape(), src.Strides(), rank)

	for i := range dv {
		srcIdx := 0
		rem := i
		for d := 0; d < rank; d++ {
			coord := rem / dstStrides[d]
			rem %= dstStrides[d]
			srcIdx += coord * srcStrides[d]
		}
		dv[i] = sv[srcIdx]
	}
}
