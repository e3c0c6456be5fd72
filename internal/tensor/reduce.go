package tensor

import (
	"fmt"
	"math"
)

// Sum reduces a tensor by summing over the given axes.
//
// A nil axes slice sums over every axis, producing a 0-dimensional result
// (or an all-ones shape when keepDims is set). Negative axes count from the
// end, NumPy style.
func Sum(t *RawTensor, axes []int, keepDims bool) *RawTensor {
	reduced := normalizeAxes(t.NDim(), axes)
	outShape := reducedShape(t.Shape(), reduced, keepDims)
	out := Zeros(outShape, t.DType())

	contrib := reduceContrib(t.Shape(), outShape.ComputeStrides(), reduced, keepDims)
	switch t.DType() {
	case Float32:
		reduceKernel(t, contrib, t.AsFloat32(), out.AsFloat32(), func(acc, v float32) float32 { return acc + v })
	default:
		reduceKernel(t, contrib, t.AsFloat64(), out.AsFloat64(), func(acc, v float64) float64 { return acc + v })
	}
	return out
}

// MaxAlong reduces a tensor by taking the maximum over a single axis.
// Used by the softmax forward rule for numerical stability.
func MaxAlong(t *RawTensor, axis int, keepDims bool) *RawTensor {
	reduced := normalizeAxes(t.NDim(), []int{axis})
	outShape := reducedShape(t.Shape(), reduced, keepDims)
	out := Zeros(outShape, t.DType())

	switch t.DType() {
	case Float32:
		fill(out.AsFloat32(), float32(math.Inf(-1)))
	default:
		fill(out.AsFloat64(), math.Inf(-1))
	}

	contrib := reduceContrib(t.Shape(), outShape.ComputeStrides(), reduced, keepDims)
	switch t.DType() {
	case Float32:
		reduceKernel(t, contrib, t.AsFloat32(), out.AsFloat32(), func(acc, v float32) float32 { return max(acc, v) })
	default:
		reduceKernel(t, contrib, t.AsFloat64(), out.AsFloat64(), func(acc, v float64) float64 { return max(acc, v) })
	}
	return out
}

// SumTo reduces a tensor to a target shape by summing over broadcast axes:
// leading dimensions absent from the target and dimensions where the target
// size is 1. It is the exact adjoint of BroadcastTo.
func SumTo(t *RawTensor, shape Shape) *RawTensor {
	srcShape := t.Shape()
	lead := len(srcShape) - len(shape)
	if lead < 0 {
		panic(fmt.Sprintf("SumTo: target %v has higher rank than source %v", shape, srcShape))
	}
	for j, dim := range shape {
		if dim != srcShape[lead+j] && dim != 1 {
			panic(fmt.Sprintf("SumTo: cannot reduce %v to %v", srcShape, shape))
		}
	}

	out := Zeros(shape, t.DType())
	outStrides := shape.ComputeStrides()

	// Per-source-dimension contribution to the output offset; broadcast
	// dimensions contribute nothing, so their elements accumulate.
	contrib := make([]int, len(srcShape))
	for j, dim := range shape {
		if dim != 1 {
			contrib[lead+j] = outStrides[j]
		}
	}

	switch t.DType() {
	case Float32:
		reduceKernel(t, contrib, t.AsFloat32(), out.AsFloat32(), func(acc, v float32) float32 { return acc + v })
	default:
		reduceKernel(t, contrib, t.AsFloat64(), out.AsFloat64(), func(acc, v float64) float64 { return acc + v })
	}
	return out
}

// normalizeAxes resolves negative axes and returns a reduced-axis lookup.
// A nil input selects every axis.
func normalizeAxes(ndim int, axes []int) []bool {
	reduced := make([]bool, ndim)
	if axes == nil {
		for i := range reduced {
			reduced[i] = true
		}
		return reduced
	}
	for _, ax := range axes {
		if ax < 0 {
			ax += ndim
		}
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("reduction axis out of range for %d-dimensional tensor", ndim))
		}
		reduced[ax] = true
	}
	return reduced
}

// reducedShape computes the output shape of a reduction.
func reducedShape(src Shape, reduced []bool, keepDims bool) Shape {
	out := make(Shape, 0, len(src))
	for d, dim := range src {
		switch {
		case !reduced[d]:
			out = append(out, dim)
		case keepDims:
			out = append(out, 1)
		}
	}
	return out
}

// reduceContrib computes, per source dimension, the output-offset stride a
// coordinate along that dimension contributes. Reduced dimensions contribute 0.
func reduceContrib(src Shape, outStrides []int, reduced []bool, keepDims bool) []int {
	contrib := make([]int, len(src))
	outDim := 0
	for d := range src {
		switch {
		case !reduced[d]:
			contrib[d] = outStrides[outDim]
			outDim++
		case keepDims:
			outDim++
		}
	}
	return contrib
}

// reduceKernel folds every source element into its output slot.
func reduceKernel[T Float](src *RawTensor, contrib []int, sv, ov []T, fold func(acc, v T) T) {
	srcStrides := src.Strides()
	rank := src.NDim()

	for i, v := range sv {
		outIdx := 0
		rem := i
		for d := 0; d < rank; d++ {
			coord := rem / srcStrides[d]
			rem %= srcStrides[d]
			outIdx += coord * contrib[d]
		}
		ov[outIdx] = fold(ov[outIdx], v)
	}
}
