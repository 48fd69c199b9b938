// Copyright 2026 The minim Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package minimize drives gradient descent against an objective.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	obj, _ := objective.NewQuadratic([]float64{5, 0, 1}, backend)
//	x, _ := tensor.FromSlice([]float64{2, 1, 10}, tensor.Shape{3}, backend)
//	param := optim.NewParameter("x", x)
//	opt := optim.NewSGD([]*optim.Parameter[*autodiff.Backend[*cpu.Backend]]{param},
//	    optim.SGDConfig{LR: 0.0001})
//
//	result, err := minimize.Run(ctx, backend, obj, param, opt, minimize.Config{
//	    Steps: 50000,
//	})
package minimize

import (
	"context"

	"github.com/minim-ml/minim/internal/autodiff"
	"github.com/minim-ml/minim/internal/minimize"
	"github.com/minim-ml/minim/internal/objective"
	"github.com/minim-ml/minim/internal/optim"
	"github.com/minim-ml/minim/internal/tensor"
)

// Config controls a minimization run.
type Config = minimize.Config

// Result reports the outcome of a minimization run.
type Result = minimize.Result

// Run minimizes obj starting from param's current value, updating param in
// place through opt. See the internal package for the step semantics.
func Run[B tensor.Backend](
	ctx context.Context,
	backend *autodiff.Backend[B],
	obj objective.Objective[*autodiff.Backend[B]],
	param *optim.Parameter[*autodiff.Backend[B]],
	opt optim.Optimizer,
	cfg Config,
) (*Result, error) {
	return minimize.Run(ctx, backend, obj, param, opt, cfg)
}
