package autodiff

import (
	"sort"

	"github.com/ember-ml/ember/internal/tensor"
)

// sumOp reduces a tensor by summing over the given axes (all axes when nil).
//
// Backward: each input element contributed with weight 1, so the gradient is
// the output gradient broadcast back to the pre-reduction shape. When
// keepDims was false the collapsed axes are first reinserted as size-1
// dimensions (with negative axes normalized) so the broadcast lines up.
type sumOp struct {
	axes     []int
	keepDims bool
	xShape   tensor.Shape
}

func (op *sumOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	op.xShape = xs[0].Shape()
	return []*tensor.RawTensor{tensor.Sum(xs[0], op.axes, op.keepDims)}
}

func (op *sumOp) Backward(_ *Function, gys []*Variable) []*Variable {
	gy := reshapeSumBackward(gys[0], op.xShape, op.axes, op.keepDims)
	return []*Variable{BroadcastTo(gy, op.xShape)}
}

// Sum reduces x by summing over axes. A nil axes slice sums over every axis.
func Sum(x *Variable, axes []int, keepDims bool) *Variable {
	op := &sumOp{keepDims: keepDims}
	if axes != nil {
		op.axes = append([]int(nil), axes...)
	}
	return apply1(op, x)
}

// reshapeSumBackward reinserts size-1 axes collapsed by a keepDims=false
// reduction so the gradient can broadcast back to the original shape.
func reshapeSumBackward(gy *Variable, xShape tensor.Shape, axes []int, keepDims bool) *Variable {
	ndim := len(xShape)
	if ndim == 0 || axes == nil || keepDims {
		return gy
	}

	actual := make([]int, len(axes))
	for i, ax := range axes {
		if ax < 0 {
			ax += ndim
		}
		actual[i] = ax
	}
	sort.Ints(actual)

	shape := append(tensor.Shape(nil), gy.Shape()...)
	for _, ax := range actual {
		shape = append(shape, 0)
		copy(shape[ax+1:], shape[ax:])
		shape[ax] = 1
	}
	return Reshape(gy, shape)
}
