package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// tanhOp is the hyperbolic tangent.
//
// Backward: dy/dx = 1 - y², expressed in terms of the saved output.
type tanhOp struct{}

func (op *tanhOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Tanh(xs[0])}
}

func (op *tanhOp) Backward(fn *Function, gys []*Variable) []*Variable {
	y := fn.Output(0)
	one := NewVariable(tensor.OnesLike(y.Data()))
	return []*Variable{Mul(gys[0], Sub(one, Mul(y, y)))}
}

// Tanh returns tanh(x) elementwise.
func Tanh(x *Variable) *Variable {
	return apply1(&tanhOp{}, x)
}
