package optim

import (
	"math"

	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// Adam implements adaptive moment estimation with bias correction.
//
// Per step t (for each parameter element):
//
//	m = beta1 * m + (1 - beta1) * grad
//	v = beta2 * v + (1 - beta2) * grad²
//	m̂ = m / (1 - beta1^t)
//	v̂ = v / (1 - beta2^t)
//	param -= lr * m̂ / (sqrt(v̂) + eps)
type Adam struct {
	params []*nn.Parameter
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int
	ms     map[*nn.Parameter]*tensor.RawTensor
	vs     map[*nn.Parameter]*tensor.RawTensor
}

// AdamConfig holds configuration for the Adam optimizer.
// Zero fields take the conventional defaults.
type AdamConfig struct {
	LR      float64    // learning rate (default: 0.001)
	Betas   [2]float64 // exponential decay rates (default: 0.9, 0.999)
	Epsilon float64    // numerical stability term (default: 1e-8)
}

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas == [2]float64{} {
		config.Betas = [2]float64{0.9, 0.999}
	}
	if config.Epsilon == 0 {
		config.Epsilon = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Epsilon,
		ms:     make(map[*nn.Parameter]*tensor.RawTensor),
		vs:     make(map[*nn.Parameter]*tensor.RawTensor),
	}
}

// Step applies one Adam update to every parameter that has a gradient.
func (a *Adam) Step() {
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		grad := gradOf(param)
		if grad == nil {
			continue
		}

		data := param.Data()
		m, ok := a.ms[param]
		if !ok {
			m = tensor.ZerosLike(data)
			a.ms[param] = m
			a.vs[param] = tensor.ZerosLike(data)
		}
		v := a.vs[param]

		switch data.DType() {
		case tensor.Float32:
			adamUpdate(data.AsFloat32(), grad.AsFloat32(), m.AsFloat32(), v.AsFloat32(),
				float32(a.lr), float32(a.beta1), float32(a.beta2), float32(a.eps), float32(c1), float32(c2))
		default:
			adamUpdate(data.AsFloat64(), grad.AsFloat64(), m.AsFloat64(), v.AsFloat64(),
				a.lr, a.beta1, a.beta2, a.eps, c1, c2)
		}
	}
}

// ZeroGrad clears all parameter gradients.
func (a *Adam) ZeroGrad() {
	zeroGrads(a.params)
}

// LR returns the learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}

func adamUpdate[T tensor.Float](p, g, m, v []T, lr, beta1, beta2, eps, c1, c2 T) {
	for i := range p {
		m[i] = beta1*m[i] + (1-beta1)*g[i]
		v[i] = beta2*v[i] + (1-beta2)*g[i]*g[i]
		mHat := m[i] / c1
		vHat := v[i] / c2
		p[i] -= lr * mHat / (T(math.Sqrt(float64(vHat))) + eps)
	}
}
