package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// sigmoidOp is the logistic function: y = 1 / (1 + e ** -x).
//
// Backward: dy/dx = y * (1 - y), expressed in terms of the saved output as
// y - y² to stay dtype-agnostic.
type sigmoidOp struct{}

func (op *sigmoidOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Sigmoid(xs[0])}
}

func (op *sigmoidOp) Backward(fn *Function, gys []*Variable) []*Variable {
	y := fn.Output(0)
	return []*Variable{Mul(gys[0], Sub(y, Mul(y, y)))}
}

// Sigmoid returns 1 / (1 + e**-x) elementwise.
func Sigmoid(x *Variable) *Variable {
	return apply1(&sigmoidOp{}, x)
}
