package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// matMulOp is the 2-D matrix product: y = x @ w.
//
// Backward:
//
//	dL/dx = gy @ wᵀ
//	dL/dw = xᵀ @ gy
type matMulOp struct{}

func (op *matMulOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.MatMul(xs[0], xs[1])}
}

func (op *matMulOp) Backward(fn *Function, gys []*Variable) []*Variable {
	x, w := fn.Input(0), fn.Input(1)
	gx := MatMul(gys[0], Transpose(w))
	gw := MatMul(Transpose(x), gys[0])
	return []*Variable{gx, gw}
}

// MatMul returns the matrix product x @ w for 2-D operands.
func MatMul(x, w *Variable) *Variable {
	return apply1(&matMulOp{}, x, w)
}
