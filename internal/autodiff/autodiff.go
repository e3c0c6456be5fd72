// Package autodiff implements reverse-mode automatic differentiation over a
// dynamically built computation graph.
//
// Numeric operations on Variables build the graph as they execute: each
// operation call produces fresh output Variables whose creator edges point
// back at the invocation that produced them. Calling Backward on a terminal
// Variable walks the creator graph in generation order, invoking each
// operation's backward rule and accumulating gradients into the inputs.
//
// Architecture:
//   - Variable: graph node holding a tensor value, its accumulated gradient,
//     a creator edge, and an integer generation (graph depth)
//   - Operation interface: one implementation per op kind, pairing a forward
//     numeric rule with a reverse-mode gradient rule
//   - Function: per-invocation record owning its inputs and holding weak
//     references to its outputs, so the Variable→Function→Variable cycle
//     stays collectable
//   - Backward scheduler: generation-ordered worklist that visits each
//     Function exactly once, in reverse topological order
//
// Usage:
//
//	x := autodiff.MustVariable(2.0)
//	y := autodiff.Tanh(x)
//	_ = y.Backward(false)
//	fmt.Println(x.Grad()) // dy/dx = 1 - tanh(2)^2
package autodiff

// backpropEnabled gates whether operations record graph edges at all.
// Execution is single-threaded and synchronous, so a plain package-level
// flag with scoped restore is sufficient.
var backpropEnabled = true

// EnableBackprop sets the gradient-tracking flag and returns a function that
// restores the previous value. The returned restore function must run on all
// exit paths so nested toggling composes:
//
//	defer autodiff.EnableBackprop(false)()
func EnableBackprop(enabled bool) func() {
	old := backpropEnabled
	backpropEnabled = enabled
	return func() { backpropEnabled = old }
}

// NoGrad disables gradient tracking until the returned restore function runs.
// Use around inference or evaluation code to avoid retaining the graph:
//
//	defer autodiff.NoGrad()()
//	y := model.Forward(x) // y.Creator() == nil, no memory overhead
func NoGrad() func() {
	return EnableBackprop(false)
}

// BackpropEnabled reports whether operations currently record graph edges.
func BackpropEnabled() bool {
	return backpropEnabled
}
