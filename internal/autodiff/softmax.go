package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// softmaxOp normalizes values into a probability distribution along an axis.
//
// Forward shifts by the axis maximum before exponentiating so large inputs
// cannot overflow.
//
// Backward: the Jacobian contracts to
//
//	dL/dx = y * (gy - sum(y * gy, axis, keepdims))
type softmaxOp struct {
	axis int
}

func (op *softmaxOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	x := xs[0]
	shifted := tensor.Sub(x, tensor.MaxAlong(x, op.axis, true))
	e := tensor.Exp(shifted)
	return []*tensor.RawTensor{tensor.Div(e, tensor.Sum(e, []int{op.axis}, true))}
}

func (op *softmaxOp) Backward(fn *Function, gys []*Variable) []*Variable {
	y := fn.Output(0)
	gx := Mul(y, gys[0])
	sumdx := Sum(gx, []int{op.axis}, true)
	return []*Variable{Sub(gx, Mul(y, sumdx))}
}

// Softmax normalizes x into a probability distribution along axis.
// Negative axes count from the end.
func Softmax(x *Variable, axis int) *Variable {
	if axis < 0 {
		axis += x.NDim()
	}
	return apply1(&softmaxOp{axis: axis}, x)
}
