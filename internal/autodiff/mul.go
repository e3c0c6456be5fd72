package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// mulOp is elementwise multiplication: y = x0 * x1.
//
// Backward: dy/dx0 = x1 and dy/dx1 = x0, so each input's gradient is the
// output gradient times the other input.
type mulOp struct{}

func (op *mulOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Mul(xs[0], xs[1])}
}

func (op *mulOp) Backward(fn *Function, gys []*Variable) []*Variable {
	x0, x1 := fn.Input(0), fn.Input(1)
	gx0 := Mul(gys[0], x1)
	gx1 := Mul(gys[0], x0)
	if !x0.Shape().Equal(x1.Shape()) {
		gx0 = SumTo(gx0, x0.Shape())
		gx1 = SumTo(gx1, x1.Shape())
	}
	return []*Variable{gx0, gx1}
}

// Mul returns x0 * x1 elementwise, with broadcasting.
func Mul(x0, x1 *Variable) *Variable {
	return apply1(&mulOp{}, x0, x1)
}
