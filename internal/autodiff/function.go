package autodiff

import (
	"fmt"
	"weak"

	"github.com/ember-ml/ember/internal/tensor"
)

// Operation is a differentiable operation kind: a pure forward numeric rule
// paired with a closed-form reverse-mode gradient rule.
//
// Forward works on raw tensor values and may save whatever context the
// backward rule needs (input shapes, masks). Backward receives the gradient
// of each output as a Variable and must return one gradient per input, in
// input order, each exactly matching its input's shape; when broadcasting
// occurred in forward, the rule routes the mismatched gradient through the
// shape-adaptation operations (SumTo, BroadcastTo) rather than truncating.
// Because backward composes graph operations on Variables, gradients are
// themselves differentiable.
//
// Calling Backward before Forward is a programmer error: the saved context
// does not exist yet. The scheduler's sequencing guarantees it never happens
// in the forward use path.
type Operation interface {
	Forward(xs []*tensor.RawTensor) []*tensor.RawTensor
	Backward(fn *Function, gys []*Variable) []*Variable
}

// UnimplementedOperation panics on both rules. Embed it while fleshing out a
// new Operation so a missing rule fails loudly instead of being skipped.
type UnimplementedOperation struct{}

// Forward panics: the embedding operation has not implemented a forward rule.
func (UnimplementedOperation) Forward([]*tensor.RawTensor) []*tensor.RawTensor {
	panic("autodiff: operation does not implement Forward")
}

// Backward panics: the embedding operation has not implemented a backward rule.
func (UnimplementedOperation) Backward(*Function, []*Variable) []*Variable {
	panic("autodiff: operation does not implement Backward")
}

// Function is a single recorded invocation of an Operation: an interior
// vertex of the computation graph.
//
// It owns its inputs (the traversal edges of the backward pass) but holds
// only weak references to its outputs. Each output Variable owns a strong
// creator edge back to the Function, so a strong forward edge would complete
// an unreclaimable cycle of handles.
type Function struct {
	op         Operation
	inputs     []*Variable
	outputs    []weak.Pointer[Variable]
	generation int
}

// Op returns the operation this invocation recorded.
func (f *Function) Op() Operation {
	return f.op
}

// Inputs returns the ordered input variables.
func (f *Function) Inputs() []*Variable {
	return f.inputs
}

// Input returns the i-th input variable.
func (f *Function) Input(i int) *Variable {
	return f.inputs[i]
}

// NumOutputs returns how many outputs the invocation produced.
func (f *Function) NumOutputs() int {
	return len(f.outputs)
}

// Output dereferences the i-th output. Returns nil when the output has been
// collected, which can only happen once no live handle can reach it.
func (f *Function) Output(i int) *Variable {
	return f.outputs[i].Value()
}

// Generation returns the maximum generation among the inputs, set at
// construction. Outputs inherit it as +1.
func (f *Function) Generation() int {
	return f.generation
}

// apply runs the shared invocation protocol: coerce inputs to raw values,
// call the forward rule, wrap each result as a fresh output Variable, and,
// only while gradient tracking is enabled, record the graph edges. With
// tracking disabled the outputs have no creator and nothing is retained.
func apply(op Operation, inputs ...*Variable) []*Variable {
	xs := make([]*tensor.RawTensor, len(inputs))
	for i, in := range inputs {
		xs[i] = in.mustData()
	}

	ys := op.Forward(xs)
	outputs := make([]*Variable, len(ys))
	for i, y := range ys {
		outputs[i] = NewVariable(y)
	}

	if backpropEnabled {
		fn := &Function{
			op:         op,
			inputs:     inputs,
			outputs:    make([]weak.Pointer[Variable], len(outputs)),
			generation: maxGeneration(inputs),
		}
		for i, out := range outputs {
			out.creator = fn
			out.generation = fn.generation + 1
			fn.outputs[i] = weak.Make(out)
		}
	}

	return outputs
}

// apply1 is apply for the common single-output case.
func apply1(op Operation, inputs ...*Variable) *Variable {
	return apply(op, inputs...)[0]
}

func maxGeneration(inputs []*Variable) int {
	gen := 0
	for _, in := range inputs {
		if in.generation > gen {
			gen = in.generation
		}
	}
	return gen
}

// checkGradShape asserts that a backward rule's returned gradient exactly
// matches its input's shape.
// A mismatch here means a broken backward rule, never a runtime condition.
func checkGradShape(op Operation, input, grad *Variable) {
	if !input.Shape().Equal(grad.Shape()) {
		panic(fmt.Sprintf("autodiff: %T backward returned gradient of shape %v for input of shape %v",
			op, grad.Shape(), input.Shape()))
	}
}
