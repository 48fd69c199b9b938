// Package objective defines scalar objective functions for minimization.
//
// An Objective builds its value from tensor operations, so that evaluating it
// under an autodiff backend records the computation and makes the gradient
// available through the tape. ValueAt provides a plain float64 evaluation for
// reporting and for finite-difference checks, without touching any tape.
package objective

import (
	"fmt"

	"github.com/minim-ml/minim/internal/tensor"
)

// Objective is a pure, deterministic scalar function of a parameter vector.
type Objective[B tensor.Backend] interface {
	// Name returns a short identifier used in logs.
	Name() string

	// Eval computes the objective value as a scalar tensor. When x lives on
	// an autodiff backend the evaluation is recorded for the backward pass.
	Eval(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]

	// ValueAt evaluates the objective directly on a float64 vector,
	// outside any tensor backend.
	ValueAt(x []float64) float64
}

// Quadratic is the sum of squared deviations from a fixed target point:
//
//	f(x) = Σ_i (x_i - target_i)²
//
// It is convex and differentiable everywhere, with a unique global minimum of
// 0 at the target. The gradient is 2(x - target), zero only at the target.
type Quadratic[B tensor.Backend] struct {
	target *tensor.Tensor[float64, B]
	raw    []float64
}

// NewQuadratic creates a quadratic objective centered on the given target.
func NewQuadratic[B tensor.Backend](target []float64, backend B) (*Quadratic[B], error) {
	if len(target) == 0 {
		return nil, fmt.Errorf("quadratic: target must not be empty")
	}

	t, err := tensor.FromSlice(target, tensor.Shape{len(target)}, backend)
	if err != nil {
		return nil, fmt.Errorf("quadratic: %w", err)
	}

	return &Quadratic[B]{
		target: t,
		raw:    append([]float64(nil), target...),
	}, nil
}

// Name returns "quadratic".
func (q *Quadratic[B]) Name() string { return "quadratic" }

// Target returns the minimum location.
func (q *Quadratic[B]) Target() []float64 {
	return append([]float64(nil), q.raw...)
}

// Eval computes Σ (x - target)².
func (q *Quadratic[B]) Eval(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return x.Sub(q.target).Square().Sum()
}

// ValueAt evaluates the objective directly.
func (q *Quadratic[B]) ValueAt(x []float64) float64 {
	var sum float64
	for i, v := range x {
		d := v - q.raw[i]
		sum += d * d
	}
	return sum
}

// Sphere is the quadratic centered on the origin: f(x) = Σ x_i².
type Sphere[B tensor.Backend] struct{}

// NewSphere creates a sphere objective.
func NewSphere[B tensor.Backend]() *Sphere[B] {
	return &Sphere[B]{}
}

// Name returns "sphere".
func (s *Sphere[B]) Name() string { return "sphere" }

// Eval computes Σ x².
func (s *Sphere[B]) Eval(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return x.Square().Sum()
}

// ValueAt evaluates the objective directly.
func (s *Sphere[B]) ValueAt(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}

// Rosenbrock is the classic banana-valley benchmark:
//
//	f(x) = Σ_{i<n-1} 100 (x_{i+1} - x_i²)² + (1 - x_i)²
//
// Global minimum 0 at (1, ..., 1). Much harder for plain gradient descent
// than the quadratic; useful for exercising momentum and Adam.
type Rosenbrock[B tensor.Backend] struct{}

// NewRosenbrock creates a Rosenbrock objective.
func NewRosenbrock[B tensor.Backend]() *Rosenbrock[B] {
	return &Rosenbrock[B]{}
}

// Name returns "rosenbrock".
func (r *Rosenbrock[B]) Name() string { return "rosenbrock" }

// Eval computes the Rosenbrock value from two overlapping slices of x.
// The slices share x, so their gradients accumulate on the tape.
func (r *Rosenbrock[B]) Eval(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	n := x.NumElements()
	if n < 2 {
		panic("rosenbrock: needs at least 2 dimensions")
	}

	head := x.Slice(0, n-1)
	tail := x.Slice(1, n)

	valley := tail.Sub(head.Square()).Square().MulScalar(100)
	offset := head.Neg().AddScalar(1).Square() // (1 - x_i)²

	return valley.Add(offset).Sum()
}

// ValueAt evaluates the objective directly.
func (r *Rosenbrock[B]) ValueAt(x []float64) float64 {
	var sum float64
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		sum += 100*a*a + b*b
	}
	return sum
}

// Func adapts a pair of closures into an Objective. The tensor form and the
// plain form must compute the same function.
type Func[B tensor.Backend] struct {
	name  string
	eval  func(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]
	value func(x []float64) float64
}

// NewFunc creates an objective from closures.
func NewFunc[B tensor.Backend](
	name string,
	eval func(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B],
	value func(x []float64) float64,
) *Func[B] {
	return &Func[B]{name: name, eval: eval, value: value}
}

// Name returns the name given at construction.
func (f *Func[B]) Name() string { return f.name }

// Eval invokes the tensor-form closure.
func (f *Func[B]) Eval(x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return f.eval(x)
}

// ValueAt invokes the plain-form closure.
func (f *Func[B]) ValueAt(x []float64) float64 {
	return f.value(x)
}
