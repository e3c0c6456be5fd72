// Package nn implements neural network building blocks on top of the
// autodiff engine.
//
// This package provides:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable leaf variables with gradient accumulation
//   - Linear: fully connected layer
//   - MLP: multi-layer perceptron composition helper
package nn

import "github.com/ember-ml/ember/internal/autodiff"

// Module is the base interface for all neural network components.
//
// Modules compose: a container module returns its own parameters plus those
// of every nested module.
type Module interface {
	// Forward computes the module's output for the given input variable,
	// building graph edges as it goes.
	Forward(x *autodiff.Variable) *autodiff.Variable

	// Parameters returns all trainable parameters of this module, for
	// enumeration by an optimizer.
	Parameters() []*Parameter
}

// ClearGrads clears the gradients of every parameter of a module.
// Call before each training step to avoid accumulation across steps.
func ClearGrads(m Module) {
	for _, p := range m.Parameters() {
		p.ClearGrad()
	}
}
