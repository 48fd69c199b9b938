// Package optim implements gradient-based optimization algorithms.
//
// This package provides:
//   - Parameter: a named, trainable tensor updated in place
//   - Optimizer interface: base interface for all optimizers
//   - SGD: gradient descent with optional momentum, Nesterov and weight decay
//   - Adam: adaptive moment estimation
//   - ClipGradNorm / ClipGradValue: gradient clipping applied between the
//     backward pass and the optimizer step
//
// Example usage:
//
//	opt := optim.NewSGD([]*optim.Parameter[B]{param}, optim.SGDConfig{LR: 0.01})
//
//	for step := 0; step < steps; step++ {
//	    tape.Clear()
//	    tape.StartRecording()
//	    loss := obj.Eval(param.Tensor())
//	    grads := autodiff.Backward(loss, backend)
//	    opt.Step(grads)
//	}
package optim

import (
	"github.com/minim-ml/minim/internal/tensor"
)

// Parameter represents a trainable parameter: the mutable state of a
// minimization run. Optimizers update the parameter's tensor in place, so
// its RawTensor identity stays stable across steps and gradient lookups.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float64, B]
}

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float64, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float64, B] {
	return p.tensor
}

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update parameters in place based on computed gradients to
// minimize the objective.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Takes the gradient map produced by autodiff.Backward. Parameters
	// without an entry (they did not participate in the forward pass)
	// are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate. Useful for scheduling.
	SetLR(lr float64)
}

// gradientFor retrieves the gradient for a parameter from the gradient map.
// Returns nil if the parameter was not part of the computation graph.
func gradientFor[B tensor.Backend](param *Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) []float64 {
	if param == nil {
		return nil
	}
	grad, ok := grads[param.Tensor().Raw()]
	if !ok {
		return nil
	}
	return grad.AsFloat64()
}
