// Copyright 2026 The minim Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU compute backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{3}, backend)
package cpu

import (
	"github.com/minim-ml/minim/internal/backend/cpu"
)

// Backend implements tensor operations on CPU.
type Backend = cpu.Backend

// New creates a new CPU backend.
func New() *Backend {
	return cpu.New()
}
