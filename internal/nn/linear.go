package nn

import (
	"fmt"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Linear implements a fully connected layer: y = x @ W + b.
//
// The weight has shape [inFeatures, outFeatures] and the bias shape
// [outFeatures]; the bias broadcasts across the batch dimension during the
// forward pass, and the broadcast gradient is summed back automatically.
//
// Weights use Xavier initialization, biases start at zero.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter
	bias        *Parameter
}

// NewLinear creates a Linear layer mapping inFeatures to outFeatures.
func NewLinear(inFeatures, outFeatures int) *Linear {
	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", Xavier(inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures})),
		bias:        NewParameter("bias", tensor.Zeros(tensor.Shape{outFeatures}, tensor.Float64)),
	}
}

// Forward computes y = x @ W + b for input of shape [batch, inFeatures].
func (l *Linear) Forward(x *autodiff.Variable) *autodiff.Variable {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2-D input [batch, features], got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}

	return autodiff.Linear(x, l.weight.Variable, l.bias.Variable)
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}
