package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// negOp is elementwise negation: y = -x.
//
// Backward: dy/dx = -1, so the gradient of negation is negation.
type negOp struct{}

func (op *negOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Neg(xs[0])}
}

func (op *negOp) Backward(_ *Function, gys []*Variable) []*Variable {
	return []*Variable{Neg(gys[0])}
}

// Neg returns -x elementwise.
func Neg(x *Variable) *Variable {
	return apply1(&negOp{}, x)
}
