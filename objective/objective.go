// Copyright 2026 The minim Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package objective provides scalar objective functions for minimization.
package objective

import (
	"github.com/minim-ml/minim/internal/objective"
	"github.com/minim-ml/minim/internal/tensor"
)

// Objective is a pure, deterministic scalar function of a parameter vector.
type Objective[B tensor.Backend] = objective.Objective[B]

// Quadratic is the sum of squared deviations from a fixed target point,
// with its unique global minimum of 0 at the target.
type Quadratic[B tensor.Backend] = objective.Quadratic[B]

// NewQuadratic creates a quadratic objective centered on the given target.
//
// Example:
//
//	obj, err := objective.NewQuadratic([]float64{5, 0, 1}, backend)
func NewQuadratic[B tensor.Backend](target []float64, backend B) (*Quadratic[B], error) {
	return objective.NewQuadratic(target, backend)
}

// Sphere is the quadratic centered on the origin.
type Sphere[B tensor.Backend] = objective.Sphere[B]

// NewSphere creates a sphere objective.
func NewSphere[B tensor.Backend]() *Sphere[B] {
	return objective.NewSphere[B]()
}

// Rosenbrock is the classic banana-valley benchmark with minimum at (1, ..., 1).
type Rosenbrock[B tensor.Backend] = objective.Rosenbrock[B]

// NewRosenbrock creates a Rosenbrock objective.
func NewRosenbrock[B tensor.Backend]() *Rosenbrock[B] {
	return objective.NewRosenbrock[B]()
}

// Func adapts closures into an Objective.
type Func[B tensor.Backend] = objective.Func[B]

// NewFunc creates an objective from a tensor-form and a plain-form closure.
// Both must compute the same function.
func NewFunc[B tensor.Backend](
	name string,
	eval func(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B],
	value func(x []float64) float64,
) *Func[B] {
	return objective.NewFunc(name, eval, value)
}
