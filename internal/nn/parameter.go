package nn

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Parameter is a trainable leaf variable: a weight or bias whose gradient
// accumulates during the backward pass and is consumed by an optimizer.
//
// It is an ordinary graph leaf; tagging it as a Parameter only marks it for
// enumeration by Module.Parameters.
type Parameter struct {
	*autodiff.Variable
}

// NewParameter wraps an initialized tensor value as a named parameter.
func NewParameter(name string, data *tensor.RawTensor) *Parameter {
	v := autodiff.NewVariable(data)
	v.SetName(name)
	return &Parameter{Variable: v}
}
