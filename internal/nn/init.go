package nn

import (
	"math"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Xavier returns a weight tensor initialized from the Glorot uniform
// distribution U(-b, b) with b = sqrt(6 / (fanIn + fanOut)), which keeps
// activation variance roughly constant across layers.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.RawTensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	w := tensor.Zeros(shape, tensor.Float64)
	data := w.AsFloat64()
	for i := range data {
		data[i] = (rand.Float64()*2 - 1) * bound
	}
	return w
}
