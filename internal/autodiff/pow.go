package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// powOp raises each element to a fixed scalar exponent: y = x ** a.
//
// Backward: dy/dx = a * x ** (a-1).
type powOp struct {
	a float64
}

func (op *powOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.PowScalar(xs[0], op.a)}
}

func (op *powOp) Backward(fn *Function, gys []*Variable) []*Variable {
	x := fn.Input(0)
	return []*Variable{Scale(Mul(Pow(x, op.a-1), gys[0]), op.a)}
}

// Pow returns x ** a elementwise for a scalar exponent a.
func Pow(x *Variable, a float64) *Variable {
	return apply1(&powOp{a: a}, x)
}

// scaleOp multiplies every element by a fixed scalar constant: y = c * x.
//
// Backward: dy/dx = c. The constant is saved context, not a graph input.
type scaleOp struct {
	c float64
}

func (op *scaleOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{tensor.Scale(xs[0], op.c)}
}

func (op *scaleOp) Backward(_ *Function, gys []*Variable) []*Variable {
	return []*Variable{Scale(gys[0], op.c)}
}

// Scale returns c * x elementwise for a scalar constant c.
func Scale(x *Variable, c float64) *Variable {
	return apply1(&scaleOp{c: c}, x)
}
