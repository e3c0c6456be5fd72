package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// reshapeOp changes a tensor's shape while preserving its elements.
//
// Backward: reshape the gradient back to the saved original shape; the two
// directions are duals through the saved context.
type reshapeOp struct {
	shape  tensor.Shape
	xShape tensor.Shape
}

func (op *reshapeOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	op.xShape = xs[0].Shape()
	return []*tensor.RawTensor{tensor.Reshape(xs[0], op.shape)}
}

func (op *reshapeOp) Backward(_ *Function, gys []*Variable) []*Variable {
	return []*Variable{Reshape(gys[0], op.xShape)}
}

// Reshape returns x with the given shape. A same-shape reshape is the
// identity and adds no graph node.
func Reshape(x *Variable, shape tensor.Shape) *Variable {
	if x.Shape().Equal(shape) {
		return x
	}
	return apply1(&reshapeOp{shape: shape.Clone()}, x)
}
