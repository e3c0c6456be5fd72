package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// subOp is elementwise subtraction: y = x0 - x1.
//
// Backward: dy/dx0 = 1 and dy/dx1 = -1, with broadcast gradients summed back
// to the original input shapes.
type subOp struct {
	x0Shape, x1Shape tensor.Shape
}

func (op *subOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*tensor.RawTensor{tensor.Sub(xs[0], xs[1])}
}

func (op *subOp) Backward(_ *Function, gys []*Variable) []*Variable {
	gx0 := gys[0]
	gx1 := Neg(gys[0])
	if !op.x0Shape.Equal(op.x1Shape) {
		gx0 = SumTo(gx0, op.x0Shape)
		gx1 = SumTo(gx1, op.x1Shape)
	}
	return []*Variable{gx0, gx1}
}

// Sub returns x0 - x1 elementwise, with broadcasting.
func Sub(x0, x1 *Variable) *Variable {
	return apply1(&subOp{}, x0, x1)
}
