package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// broadcastToOp expands a tensor to a broadcast-compatible target shape.
// sumToOp reduces a tensor back to a target shape by summing broadcast axes.
//
// The two are backward-duals: each one's backward rule is literally a call to
// the other with the saved original shape. They exist primarily so that the
// backward rules of broadcasting binary operations can route gradients back
// to each input's original shape.

type broadcastToOp struct {
	shape  tensor.Shape
	xShape tensor.Shape
}

func (op *broadcastToOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	op.xShape = xs[0].Shape()
	return []*tensor.RawTensor{tensor.BroadcastTo(xs[0], op.shape)}
}

func (op *broadcastToOp) Backward(_ *Function, gys []*Variable) []*Variable {
	return []*Variable{SumTo(gys[0], op.xShape)}
}

// BroadcastTo expands x to the target shape. A same-shape target is the
// identity and adds no graph node.
func BroadcastTo(x *Variable, shape tensor.Shape) *Variable {
	if x.Shape().Equal(shape) {
		return x
	}
	return apply1(&broadcastToOp{shape: shape.Clone()}, x)
}

type sumToOp struct {
	shape  tensor.Shape
	xShape tensor.Shape
}

func (op *sumToOp) Forward(xs []*tensor.RawTensor) []*tensor.RawTensor {
	op.xShape = xs[0].Shape()
	return []*tensor.RawTensor{tensor.SumTo(xs[0], op.shape)}
}

func (op *sumToOp) Backward(_ *Function, gys []*Variable) []*Variable {
	return []*Variable{BroadcastTo(gys[0], op.xShape)}
}

// SumTo reduces x to the target shape by summing over broadcast axes.
// A same-shape target is the identity and adds no graph node.
func SumTo(x *Variable, shape tensor.Shape) *Variable {
	if x.Shape().Equal(shape) {
		return x
	}
	return apply1(&sumToOp{shape: shape.Clone()}, x)
}
