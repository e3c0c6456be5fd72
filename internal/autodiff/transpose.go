package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// transposeOp permutes a tensor's axes.
//
// Backward: apply the inverse permutation. With no axes given the forward
// reverses the dimension order, which is its own inverse.
type transposeOp struct {
	axes []int
}

func (op *transposeOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Transpose(xs[0], op.axes...)}
}

func (op *transposeOp) Backward(_ *Function, gys []*Variable) []*Variable {
	if op.axes == nil {
		return []*Variable{Transpose(gys[0])}
	}
	return []*Variable{Transpose(gys[0], tensor.InversePermutation(op.axes)...)}
}

// Transpose returns x with permuted axes, reversing the dimension order when
// no axes are given.
func Transpose(x *Variable, axes ...int) *Variable {
	op := &transposeOp{}
	if len(axes) > 0 {
		op.axes = append([]int(nil), axes...)
	}
	return apply1(op, x)
}
