package autodiff

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// meanSquaredErrorOp computes sum((x0 - x1)²) / n, where n is the leading
// dimension (the batch size).
//
// Backward:
//
//	dL/dx0 = gy * (x0 - x1) * 2/n
//	dL/dx1 = -dL/dx0
type meanSquaredErrorOp struct{}

func (op *meanSquaredErrorOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	if xs[0].NDim() == 0 {
		panic(fmt.Sprintf("MeanSquaredError: expected at least 1-dimensional operands, got shape %v", xs[0].Shape()))
	}
	diff := tensor.Sub(xs[0], xs[1])
	sq := tensor.Mul(diff, diff)
	return []*tensor.RawTensor{tensor.Scale(tensor.Sum(sq, nil, false), 1.0/float64(diff.Shape()[0]))}
}

func (op *meanSquaredErrorOp) Backward(fn *Function, gys []*Variable) []*Variable {
	x0, x1 := fn.Input(0), fn.Input(1)
	diff := Sub(x0, x1)
	n := diff.Shape()[0]
	gx0 := Scale(Mul(gys[0], diff), 2.0/float64(n))
	gx1 := Neg(gx0)
	if !x0.Shape().Equal(x1.Shape()) {
		gx0 = SumTo(gx0, x0.Shape())
		gx1 = SumTo(gx1, x1.Shape())
	}
	return []*Variable{gx0, gx1}
}

// MeanSquaredError returns the mean squared difference of x0 and x1 as a
// 0-dimensional variable, averaged over the leading dimension.
func MeanSquaredError(x0, x1 *Variable) *Variable {
	return apply1(&meanSquaredErrorOp{}, x0, x1)
}
