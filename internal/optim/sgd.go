package optim

import (
	"github.com/minim-ml/minim/internal/tensor"
)

// SGD implements gradient descent with optional momentum, Nesterov momentum
// and weight decay.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// With Nesterov enabled the lookahead gradient is used:
//
//	param = param - lr * (gradient + momentum * velocity)
//
// Weight decay adds decay * param to the gradient before either update.
type SGD[B tensor.Backend] struct {
	params      []*Parameter[B]
	lr          float64
	momentum    float64
	nesterov    bool
	weightDecay float64
	velocities  map[*Parameter[B]][]float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR          float64 // Learning rate (default: 0.01)
	Momentum    float64 // Momentum factor (default: 0, range [0, 1))
	Nesterov    bool    // Use Nesterov momentum (requires Momentum > 0)
	WeightDecay float64 // L2 penalty coefficient (default: 0)
}

// NewSGD creates a new SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*Parameter[B], config SGDConfig) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:      params,
		lr:          config.LR,
		momentum:    config.Momentum,
		nesterov:    config.Nesterov,
		weightDecay: config.WeightDecay,
		velocities:  make(map[*Parameter[B]][]float64),
	}
}

// Step performs a single optimization step, updating parameters in place.
// Parameters with no gradient in the map are skipped.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		grad := gradientFor(param, grads)
		if grad == nil {
			continue
		}

		data := param.Tensor().Data()

		if s.momentum == 0 {
			for i := range data {
				g := grad[i]
				if s.weightDecay != 0 {
					g += s.weightDecay * data[i]
				}
				data[i] -= s.lr * g
			}
			continue
		}

		velocity, ok := s.velocities[param]
		if !ok {
			velocity = make([]float64, len(data))
			s.velocities[param] = velocity
		}

		for i := range data {
			g := grad[i]
			if s.weightDecay != 0 {
				g += s.weightDecay * data[i]
			}
			velocity[i] = s.momentum*velocity[i] + g
			if s.nesterov {
				data[i] -= s.lr * (g + s.momentum*velocity[i])
			} else {
				data[i] -= s.lr * velocity[i]
			}
		}
	}
}

// LR returns the current learning rate.
func (s *SGD[B]) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[B]) SetLR(lr float64) {
	s.lr = lr
}
