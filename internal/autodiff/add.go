package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// addOp is elementwise addition: y = x0 + x1.
//
// Backward: d(x0+x1)/dx0 = d(x0+x1)/dx1 = 1, so the output gradient flows to
// both inputs unchanged. When the forward pass broadcast, each gradient is
// summed back to its input's original shape.
type addOp struct {
	x0Shape, x1Shape tensor.Shape
}

func (op *addOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*tensor.RawTensor{tensor.Add(xs[0], xs[1])}
}

func (op *addOp) Backward(_ *Function, gys []*Variable) []*Variable {
	gx0, gx1 := gys[0], gys[0]
	if !op.x0Shape.Equal(op.x1Shape) {
		gx0 = SumTo(gx0, op.x0Shape)
		gx1 = SumTo(gx1, op.x1Shape)
	}
	return []*Variable{gx0, gx1}
}

// Add returns x0 + x1 elementwise, with broadcasting.
func Add(x0, x1 *Variable) *Variable {
	return apply1(&addOp{}, x0, x1)
}
