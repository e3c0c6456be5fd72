package tensor

import (
	"fmt"
	"math"
)

// Elementwise numeric kernels. These are pure forward rules with no graph
// knowledge: the autodiff layer pairs them with backward rules.
//
// Shape incompatibilities and dtype mismatches are programmer errors and
// panic with descriptive messages; they are never recoverable at runtime.

// Add computes elementwise a + b with NumPy-style broadcasting.
func Add(a, b *RawTensor) *RawTensor {
	return binaryOp(a, b, "Add",
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub computes elementwise a - b with broadcasting.
func Sub(a, b *RawTensor) *RawTensor {
	return binaryOp(a, b, "Sub",
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul computes elementwise a * b with broadcasting.
func Mul(a, b *RawTensor) *RawTensor {
	return binaryOp(a, b, "Mul",
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div computes elementwise a / b with broadcasting.
func Div(a, b *RawTensor) *RawTensor {
	return binaryOp(a, b, "Div",
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// Neg computes elementwise -x.
func Neg(x *RawTensor) *RawTensor {
	return unaryOp(x,
		func(v float32) float32 { return -v },
		func(v float64) float64 { return -v })
}

// Scale computes elementwise c * x for a scalar constant c.
func Scale(x *RawTensor, c float64) *RawTensor {
	c32 := float32(c)
	return unaryOp(x,
		func(v float32) float32 { return c32 * v },
		func(v float64) float64 { return c * v })
}

// PowScalar computes elementwise x ** a for a scalar exponent a.
func PowScalar(x *RawTensor, a float64) *RawTensor {
	return unaryOp(x,
		func(v float32) float32 { return float32(math.Pow(float64(v), a)) },
		func(v float64) float64 { return math.Pow(v, a) })
}

// Exp computes elementwise e ** x.
func Exp(x *RawTensor) *RawTensor {
	return unaryOp(x,
		func(v float32) float32 { return float32(math.Exp(float64(v))) },
		math.Exp)
}

// Tanh computes elementwise hyperbolic tangent.
func Tanh(x *RawTensor) *RawTensor {
	return unaryOp(x,
		func(v float32) float32 { return float32(math.Tanh(float64(v))) },
		math.Tanh)
}

// Sigmoid computes elementwise 1 / (1 + e ** -x).
func Sigmoid(x *RawTensor) *RawTensor {
	return unaryOp(x,
		func(v float32) float32 { return float32(1.0 / (1.0 + math.Exp(float64(-v)))) },
		func(v float64) float64 { return 1.0 / (1.0 + math.Exp(-v)) })
}

// ReLU computes elementwise max(x, 0).
func ReLU(x *RawTensor) *RawTensor {
	return unaryOp(x,
		func(v float32) float32 { return max(v, 0) },
		func(v float64) float64 { return max(v, 0) })
}

// PositiveMask computes an elementwise indicator: 1 where x > 0, else 0.
// The ReLU backward rule multiplies the incoming gradient by this mask.
func PositiveMask(x *RawTensor) *RawTensor {
	return unaryOp(x,
		func(v float32) float32 {
			if v > 0 {
				return 1
			}
			return 0
		},
		func(v float64) float64 {
			if v > 0 {
				return 1
			}
			return 0
		})
}

// binaryOp applies a broadcast-aware elementwise binary kernel, dispatching
// on dtype. Both operands must share a dtype.
func binaryOp(a, b *RawTensor, name string, f32 func(x, y float32) float32, f64 func(x, y float64) float64) *RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	out := Zeros(outShape, a.DType())

	switch a.DType() {
	case Float32:
		broadcastBinary(a, b, out, f32)
	default:
		broadcastBinary(a, b, out, f64)
	}
	return out
}

// broadcastBinary iterates the output tensor, reading each operand through
// stride-0 broadcast views.
func broadcastBinary[T Float](a, b, out *RawTensor, f func(x, y T) T) {
	av, bv, ov := values[T](a), values[T](b), values[T](out)

	outShape := out.Shape()
	rank := len(outShape)
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), a.Strides(), rank)
	bStrides := broadcastStrides(b.Shape(), b.Strides(), rank)

	for i := range ov {
		aIdx, bIdx := 0, 0
		rem := i
		for d := 0; d < rank; d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			aIdx += coord * aStrides[d]
			bIdx += coord * bStrides[d]
		}
		ov[i] = f(av[aIdx], bv[bIdx])
	}
}

// unaryOp applies an elementwise unary kernel, dispatching on dtype.
func unaryOp(x *RawTensor, f32 func(float32) float32, f64 func(float64) float64) *RawTensor {
	out := ZerosLike(x)
	switch x.DType() {
	case Float32:
		unaryMap(x.AsFloat32(), out.AsFloat32(), f32)
	default:
		unaryMap(x.AsFloat64(), out.AsFloat64(), f64)
	}
	return out
}

func unaryMap[T Float](src, dst []T, f func(T) T) {
	for i, v := range src {
		dst[i] = f(v)
	}
}
