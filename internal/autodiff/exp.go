package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// expOp is the elementwise exponential: y = e ** x.
//
// Backward: dy/dx = y, expressed in terms of the saved output.
type expOp struct{}

func (op *expOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Exp(xs[0])}
}

func (op *expOp) Backward(fn *Function, gys []*Variable) []*Variable {
	y := fn.Output(0)
	return []*Variable{Mul(gys[0], y)}
}

// Exp returns e ** x elementwise.
func Exp(x *Variable) *Variable {
	return apply1(&expOp{}, x)
}
