package tensor

import "fmt"

// MatMul computes the 2-D matrix product a @ b.
//
// a must have shape [m, k] and b shape [k, n]; the result has shape [m, n].
// Higher-rank batched products are out of scope for the core.
func MatMul(a, b *RawTensor) *RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("MatMul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}
	if a.NDim() != 2 || b.NDim() != 2 {
		panic(fmt.Sprintf("MatMul: expected 2-D operands, got %v @ %v", a.Shape(), b.Shape()))
	}
	if a.Shape()[1] != b.Shape()[0] {
		panic(fmt.Sprintf("MatMul: inner dimensions do not match: %v @ %v", a.Shape(), b.Shape()))
	}

	m, k, n := a.Shape()[0], a.Shape()[1], b.Shape()[1]
	out := Zeros(Shape{m, n}, a.DType())

	switch a.DType() {
	case Float32:
		matMulKernel(a.AsFloat32(), b.AsFloat32(), out.AsFloat32(), m, k, n)
	default:
		matMulKernel(a.AsFloat64(), b.AsFloat64(), out.AsFloat64(), m, k, n)
	}
	return out
}

// matMulKernel is a cache-friendly ikj loop over row-major operands.
func matMulKernel[T Float](a, b, out []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out[i*n+j] += av * b[p*n+j]
			}
		}
	}
}
