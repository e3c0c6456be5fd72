// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the public API for reverse-mode automatic
// differentiation.
//
// Operations on Variables build a dynamic computation graph as they execute;
// calling Backward on a terminal Variable walks the creator graph in
// generation order and accumulates gradients into every upstream input.
//
// Example:
//
//	x := autodiff.MustVariable(2.0)
//	y := autodiff.Tanh(x)
//	_ = y.Backward(false)
//	fmt.Println(x.Grad().Item()) // 1 - tanh(2)^2 ≈ 0.0707
package autodiff

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Variable is a differentiable value handle: a node in the computation graph.
type Variable = autodiff.Variable

// Function is a recorded operation invocation: an interior graph vertex.
type Function = autodiff.Function

// Operation pairs a forward numeric rule with a reverse-mode gradient rule.
type Operation = autodiff.Operation

// UnimplementedOperation panics on both rules; embed it while fleshing out a
// new Operation.
type UnimplementedOperation = autodiff.UnimplementedOperation

// ErrUnsupportedType is returned by AsVariable for unrecognized inputs.
var ErrUnsupportedType = autodiff.ErrUnsupportedType

// NewVariable wraps a tensor value as a leaf Variable.
func NewVariable(data *tensor.RawTensor) *Variable {
	return autodiff.NewVariable(data)
}

// AsVariable coerces a Variable, raw tensor, scalar, or float slice into a
// Variable, failing with ErrUnsupportedType for anything else.
func AsVariable(v any) (*Variable, error) {
	return autodiff.AsVariable(v)
}

// MustVariable is AsVariable that panics on unsupported input.
func MustVariable(v any) *Variable {
	return autodiff.MustVariable(v)
}

// EnableBackprop sets the gradient-tracking flag and returns a restore
// function: defer autodiff.EnableBackprop(false)().
func EnableBackprop(enabled bool) func() {
	return autodiff.EnableBackprop(enabled)
}

// NoGrad disables gradient tracking until the returned restore function
// runs: defer autodiff.NoGrad()().
func NoGrad() func() {
	return autodiff.NoGrad()
}

// BackpropEnabled reports whether operations currently record graph edges.
func BackpropEnabled() bool {
	return autodiff.BackpropEnabled()
}

// Add returns x0 + x1 elementwise, with broadcasting.
func Add(x0, x1 *Variable) *Variable { return autodiff.Add(x0, x1) }

// Sub returns x0 - x1 elementwise, with broadcasting.
func Sub(x0, x1 *Variable) *Variable { return autodiff.Sub(x0, x1) }

// Mul returns x0 * x1 elementwise, with broadcasting.
func Mul(x0, x1 *Variable) *Variable { return autodiff.Mul(x0, x1) }

// Div returns x0 / x1 elementwise, with broadcasting.
func Div(x0, x1 *Variable) *Variable { return autodiff.Div(x0, x1) }

// Neg returns -x elementwise.
func Neg(x *Variable) *Variable { return autodiff.Neg(x) }

// Pow returns x ** a elementwise for a scalar exponent.
func Pow(x *Variable, a float64) *Variable { return autodiff.Pow(x, a) }

// Scale returns c * x elementwise for a scalar constant.
func Scale(x *Variable, c float64) *Variable { return autodiff.Scale(x, c) }

// Exp returns e ** x elementwise.
func Exp(x *Variable) *Variable { return autodiff.Exp(x) }

// Reshape returns x with a new shape.
func Reshape(x *Variable, shape tensor.Shape) *Variable { return autodiff.Reshape(x, shape) }

// Transpose returns x with permuted axes (reversed when none are given).
func Transpose(x *Variable, axes ...int) *Variable { return autodiff.Transpose(x, axes...) }

// BroadcastTo expands x to a broadcast-compatible target shape.
func BroadcastTo(x *Variable, shape tensor.Shape) *Variable { return autodiff.BroadcastTo(x, shape) }

// SumTo reduces x to a target shape by summing over broadcast axes.
func SumTo(x *Variable, shape tensor.Shape) *Variable { return autodiff.SumTo(x, shape) }

// Sum reduces x by summing over axes; a nil slice sums over every axis.
func Sum(x *Variable, axes []int, keepDims bool) *Variable { return autodiff.Sum(x, axes, keepDims) }

// MatMul returns the matrix product x @ w for 2-D operands.
func MatMul(x, w *Variable) *Variable { return autodiff.MatMul(x, w) }

// Linear returns x @ w + b; pass a nil b for a bias-free transform.
func Linear(x, w, b *Variable) *Variable { return autodiff.Linear(x, w, b) }

// ReLU returns max(x, 0) elementwise.
func ReLU(x *Variable) *Variable { return autodiff.ReLU(x) }

// Sigmoid returns 1 / (1 + e**-x) elementwise.
func Sigmoid(x *Variable) *Variable { return autodiff.Sigmoid(x) }

// Softmax normalizes x into a probability distribution along axis.
func Softmax(x *Variable, axis int) *Variable { return autodiff.Softmax(x, axis) }

// Tanh returns tanh(x) elementwise.
func Tanh(x *Variable) *Variable { return autodiff.Tanh(x) }

// MeanSquaredError returns the batch-mean squared difference of x0 and x1.
func MeanSquaredError(x0, x1 *Variable) *Variable { return autodiff.MeanSquaredError(x0, x1) }
