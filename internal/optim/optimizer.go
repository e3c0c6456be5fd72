// Package optim implements optimization algorithms consuming the gradients
// the autodiff engine accumulates on parameters.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//
// Example:
//
//	model := nn.NewMLP([]int{1, 10, 1}, autodiff.Sigmoid)
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
//
//	for range epochs {
//	    optimizer.ZeroGrad()
//	    loss := autodiff.MeanSquaredError(model.Forward(x), y)
//	    if err := loss.Backward(false); err != nil {
//	        return err
//	    }
//	    optimizer.Step()
//	}
package optim

import (
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Step reads each parameter's accumulated gradient off the parameter itself
// (gradients persist only on graph leaves) and updates the parameter data in
// place. Parameters with no gradient are skipped.
type Optimizer interface {
	// Step applies one gradient update to all parameters.
	Step()

	// ZeroGrad clears all parameter gradients. Call before each backward
	// pass to prevent accumulation across iterations.
	ZeroGrad()

	// LR returns the current learning rate, for monitoring and scheduling.
	LR() float64
}

// Config is the base configuration shared by all optimizers.
type Config struct {
	LR float64 // learning rate
}

// gradOf returns a parameter's gradient tensor, nil when the parameter did
// not participate in the last backward pass.
func gradOf(p *nn.Parameter) *tensor.RawTensor {
	if g := p.Grad(); g != nil {
		return g.Data()
	}
	return nil
}

// zeroGrads clears the gradients of every parameter.
func zeroGrads(params []*nn.Parameter) {
	for _, p := range params {
		p.ClearGrad()
	}
}
