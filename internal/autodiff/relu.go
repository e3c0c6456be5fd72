package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// reluOp is the rectified linear unit: y = max(x, 0).
//
// Backward: the gradient passes through where x > 0 and is blocked
// elsewhere. The indicator mask is saved during forward.
type reluOp struct {
	mask *tensor.RawTensor
}

func (op *reluOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	op.mask = tensor.PositiveMask(xs[0])
	return []*tensor.RawTensor{tensor.ReLU(xs[0])}
}

func (op *reluOp) Backward(_ *Function, gys []*Variable) []*Variable {
	return []*Variable{Mul(gys[0], NewVariable(op.mask))}
}

// ReLU returns max(x, 0) elementwise.
func ReLU(x *Variable) *Variable {
	return apply1(&reluOp{}, x)
}
