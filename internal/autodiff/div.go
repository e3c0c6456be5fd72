package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// divOp is elementwise division: y = x0 / x1.
//
// Backward: dy/dx0 = 1/x1 and dy/dx1 = -x0/x1².
type divOp struct{}

func (op *divOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Div(xs[0], xs[1])}
}

func (op *divOp) Backward(fn *Function, gys []*Variable) []*Variable {
	x0, x1 := fn.Input(0), fn.Input(1)
	gx0 := Div(gys[0], x1)
	gx1 := Mul(gys[0], Neg(Div(x0, Mul(x1, x1))))
	if !x0.Shape().Equal(x1.Shape()) {
		gx0 = SumTo(gx0, x0.Shape())
		gx1 = SumTo(gx1, x1.Shape())
	}
	return []*Variable{gx0, gx1}
}

// Div returns x0 / x1 elementwise, with broadcasting.
func Div(x0, x1 *Variable) *Variable {
	return apply1(&divOp{}, x0, x1)
}
