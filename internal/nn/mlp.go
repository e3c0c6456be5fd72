package nn

import "github.com/ember-ml/ember/internal/autodiff"

// Activation is an elementwise nonlinearity applied between MLP layers.
type Activation func(*autodiff.Variable) *autodiff.Variable

// MLP is a multi-layer perceptron: a stack of Linear layers with the same
// activation between consecutive layers and no activation after the last.
type MLP struct {
	layers     []*Linear
	activation Activation
}

// NewMLP builds an MLP from the full list of layer sizes, input first.
// For example, NewMLP([]int{784, 128, 10}, autodiff.ReLU) has two Linear
// layers. A nil activation defaults to Sigmoid.
func NewMLP(sizes []int, activation Activation) *MLP {
	if len(sizes) < 2 {
		panic("NewMLP: need at least an input and an output size")
	}
	if activation == nil {
		activation = autodiff.Sigmoid
	}

	layers := make([]*Linear, len(sizes)-1)
	for i := range layers {
		layers[i] = NewLinear(sizes[i], sizes[i+1])
	}
	return &MLP{layers: layers, activation: activation}
}

// Forward applies every layer in order, with the activation between layers.
func (m *MLP) Forward(x *autodiff.Variable) *autodiff.Variable {
	for _, layer := range m.layers[:len(m.layers)-1] {
		x = m.activation(layer.Forward(x))
	}
	return m.layers[len(m.layers)-1].Forward(x)
}

// Parameters returns the parameters of every layer.
func (m *MLP) Parameters() []*Parameter {
	params := make([]*Parameter, 0, 2*len(m.layers))
	for _, layer := range m.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Layers returns the underlying Linear layers.
func (m *MLP) Layers() []*Linear {
	return m.layers
}
