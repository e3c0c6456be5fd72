// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network building blocks:
// trainable parameters, the Module interface, a fully connected layer, and
// a multi-layer perceptron helper.
package nn

import (
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// Parameter is a trainable leaf variable enumerated by Module.Parameters.
type Parameter = nn.Parameter

// Module is the base interface for all neural network components.
type Module = nn.Module

// Linear is a fully connected layer: y = x @ W + b.
type Linear = nn.Linear

// MLP is a multi-layer perceptron composition helper.
type MLP = nn.MLP

// Activation is an elementwise nonlinearity applied between MLP layers.
type Activation = nn.Activation

// NewParameter wraps an initialized tensor value as a named parameter.
func NewParameter(name string, data *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, data)
}

// NewLinear creates a Linear layer mapping inFeatures to outFeatures.
func NewLinear(inFeatures, outFeatures int) *Linear {
	return nn.NewLinear(inFeatures, outFeatures)
}

// NewMLP builds an MLP from the full list of layer sizes, input first.
func NewMLP(sizes []int, activation Activation) *MLP {
	return nn.NewMLP(sizes, activation)
}

// ClearGrads clears the gradients of every parameter of a module.
func ClearGrads(m Module) {
	nn.ClearGrads(m)
}

// Xavier returns a Glorot-uniform initialized weight tensor.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.RawTensor {
	return nn.Xavier(fanIn, fanOut, shape)
}
