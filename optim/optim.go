// Copyright 2026 The minim Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers.
package optim

import (
	"github.com/minim-ml/minim/internal/optim"
	"github.com/minim-ml/minim/internal/tensor"
)

// Parameter represents a trainable parameter updated in place by optimizers.
type Parameter[B tensor.Backend] = optim.Parameter[B]

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float64, B]) *Parameter[B] {
	return optim.NewParameter(name, t)
}

// Optimizer defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// SGD is gradient descent with optional momentum, Nesterov and weight decay.
type SGD[B tensor.Backend] = optim.SGD[B]

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	opt := optim.NewSGD([]*optim.Parameter[B]{param}, optim.SGDConfig{
//	    LR: 0.0001,
//	})
func NewSGD[B tensor.Backend](params []*Parameter[B], config SGDConfig) *SGD[B] {
	return optim.NewSGD(params, config)
}

// Adam is the Adam optimizer with bias correction.
type Adam[B tensor.Backend] = optim.Adam[B]

// AdamConfig contains configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
//
// Example:
//
//	opt := optim.NewAdam([]*optim.Parameter[B]{param}, optim.AdamConfig{
//	    LR: 0.001,
//	})
func NewAdam[B tensor.Backend](params []*Parameter[B], config AdamConfig) *Adam[B] {
	return optim.NewAdam(params, config)
}

// ClipGradNorm clips the global gradient norm of the parameters to maxNorm,
// in place on the gradient map. Returns the norm before clipping.
func ClipGradNorm[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor, maxNorm, normType float64) float64 {
	return optim.ClipGradNorm(params, grads, maxNorm, normType)
}

// ClipGradValue clamps every gradient component to [-maxValue, maxValue].
func ClipGradValue[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor, maxValue float64) {
	optim.ClipGradValue(params, grads, maxValue)
}
