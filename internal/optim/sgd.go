package optim

import (
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * grad
//
// Update rule with momentum:
//
//	velocity = momentum * velocity - lr * grad
//	param = param + velocity
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter]*tensor.RawTensor
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // learning rate (default: 0.01)
	Momentum float64 // momentum factor (default: 0.0, range [0, 1))
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter]*tensor.RawTensor),
	}
}

// Step applies one gradient update to every parameter that has a gradient.
func (s *SGD) Step() {
	for _, param := range s.params {
		grad := gradOf(param)
		if grad == nil {
			continue
		}

		data := param.Data()
		if s.momentum == 0 {
			// param -= lr * grad
			switch data.DType() {
			case tensor.Float32:
				sgdUpdate(data.AsFloat32(), grad.AsFloat32(), float32(s.lr))
			default:
				sgdUpdate(data.AsFloat64(), grad.AsFloat64(), s.lr)
			}
			continue
		}

		v, ok := s.velocities[param]
		if !ok {
			v = tensor.ZerosLike(data)
			s.velocities[param] = v
		}
		switch data.DType() {
		case tensor.Float32:
			momentumUpdate(data.AsFloat32(), grad.AsFloat32(), v.AsFloat32(), float32(s.lr), float32(s.momentum))
		default:
			momentumUpdate(data.AsFloat64(), grad.AsFloat64(), v.AsFloat64(), s.lr, s.momentum)
		}
	}
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() {
	zeroGrads(s.params)
}

// LR returns the learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

func sgdUpdate[T tensor.Float](p, g []T, lr T) {
	for i := range p {
		p[i] -= lr * g[i]
	}
}

func momentumUpdate[T tensor.Float](p, g, v []T, lr, momentum T) {
	for i := range p {
		v[i] = momentum*v[i] - lr*g[i]
		p[i] += v[i]
	}
}
