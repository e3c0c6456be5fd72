package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// linearOp is the affine transform y = x @ w + b, fused so the intermediate
// product is not retained by the graph.
//
// Backward:
//
//	dL/dx = gy @ wᵀ
//	dL/dw = xᵀ @ gy
//	dL/db = gy summed back to the bias shape
type linearOp struct {
	hasBias bool
	bShape  tensor.Shape
}

func (op *linearOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	y := tensor.MatMul(xs[0], xs[1])
	if op.hasBias {
		op.bShape = xs[2].Shape()
		y = tensor.Add(y, xs[2])
	}
	return []*tensor.RawTensor{y}
}

func (op *linearOp) Backward(fn *Function, gys []*Variable) []*Variable {
	x, w := fn.Input(0), fn.Input(1)
	gx := MatMul(gys[0], Transpose(w))
	gw := MatMul(Transpose(x), gys[0])
	if !op.hasBias {
		return []*Variable{gx, gw}
	}
	gb := SumTo(gys[0], op.bShape)
	return []*Variable{gx, gw, gb}
}

// Linear returns x @ w + b. Pass a nil b for a bias-free transform.
func Linear(x, w, b *Variable) *Variable {
	if b == nil {
		return apply1(&linearOp{}, x, w)
	}
	return apply1(&linearOp{hasBias: true}, x, w, b)
}
