package objective_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minim-ml/minim/internal/autodiff"
	"github.com/minim-ml/minim/internal/backend/cpu"
	"github.com/minim-ml/minim/internal/objective"
	"github.com/minim-ml/minim/internal/tensor"
)

type Backend = *autodiff.Backend[*cpu.Backend]

// evalBoth runs both forms of an objective at a point and returns
// (tensor value, plain value).
func evalBoth(t *testing.T, obj objective.Objective[Backend], point []float64) (float64, float64) {
	t.Helper()
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice(point, tensor.Shape{len(point)}, backend)
	require.NoError(t, err)

	return obj.Eval(x).Item(), obj.ValueAt(point)
}

// gradAt computes the autodiff gradient of an objective at a point.
func gradAt(t *testing.T, obj objective.Objective[Backend], point []float64) []float64 {
	t.Helper()
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice(point, tensor.Shape{len(point)}, backend)
	require.NoError(t, err)

	y := obj.Eval(x)
	grads := autodiff.Backward(y, backend)
	backend.Tape().StopRecording()

	grad, ok := grads[x.Raw()]
	require.True(t, ok, "no gradient for x")
	return grad.AsFloat64()
}

func TestQuadratic_Value(t *testing.T) {
	obj, err := objective.NewQuadratic([]float64{5, 0, 1}, autodiff.New(cpu.New()))
	require.NoError(t, err)

	// f(2, 1, 10) = (2-5)² + 1² + (10-1)² = 9 + 1 + 81 = 91
	tensorVal, plainVal := evalBoth(t, obj, []float64{2, 1, 10})
	assert.InDelta(t, 91.0, tensorVal, 1e-12)
	assert.InDelta(t, 91.0, plainVal, 1e-12)

	// Both forms agree at the minimum.
	tensorVal, plainVal = evalBoth(t, obj, []float64{5, 0, 1})
	assert.InDelta(t, 0.0, tensorVal, 1e-12)
	assert.InDelta(t, 0.0, plainVal, 1e-12)
}

func TestQuadratic_GradientZeroAtMinimum(t *testing.T) {
	target := []float64{5, 0, 1}
	obj, err := objective.NewQuadratic(target, autodiff.New(cpu.New()))
	require.NoError(t, err)

	grad := gradAt(t, obj, target)
	for i, g := range grad {
		assert.InDelta(t, 0.0, g, 1e-12, "grad[%d]", i)
	}

	// Away from the minimum: df/dx_i = 2(x_i - t_i).
	grad = gradAt(t, obj, []float64{2, 1, 10})
	assert.InDelta(t, -6.0, grad[0], 1e-12)
	assert.InDelta(t, 2.0, grad[1], 1e-12)
	assert.InDelta(t, 18.0, grad[2], 1e-12)
}

func TestQuadratic_EmptyTarget(t *testing.T) {
	_, err := objective.NewQuadratic(nil, autodiff.New(cpu.New()))
	assert.Error(t, err)
}

func TestQuadratic_Target(t *testing.T) {
	target := []float64{1, 2}
	obj, err := objective.NewQuadratic(target, autodiff.New(cpu.New()))
	require.NoError(t, err)

	got := obj.Target()
	assert.Equal(t, target, got)

	// The accessor returns a copy; mutating it must not affect the objective.
	got[0] = 99
	assert.InDelta(t, 0.0, obj.ValueAt([]float64{1, 2}), 1e-12)
}

func TestSphere(t *testing.T) {
	obj := objective.NewSphere[Backend]()

	tensorVal, plainVal := evalBoth(t, obj, []float64{1, -2, 2})
	assert.InDelta(t, 9.0, tensorVal, 1e-12)
	assert.InDelta(t, 9.0, plainVal, 1e-12)

	grad := gradAt(t, obj, []float64{1, -2, 2})
	assert.InDelta(t, 2.0, grad[0], 1e-12)
	assert.InDelta(t, -4.0, grad[1], 1e-12)
	assert.InDelta(t, 4.0, grad[2], 1e-12)
}

func TestRosenbrock_Value(t *testing.T) {
	obj := objective.NewRosenbrock[Backend]()

	// Global minimum at (1, ..., 1).
	tensorVal, plainVal := evalBoth(t, obj, []float64{1, 1, 1})
	assert.InDelta(t, 0.0, tensorVal, 1e-12)
	assert.InDelta(t, 0.0, plainVal, 1e-12)

	// f(0, 0) = 100*(0-0)² + (1-0)² = 1
	tensorVal, plainVal = evalBoth(t, obj, []float64{0, 0})
	assert.InDelta(t, 1.0, tensorVal, 1e-12)
	assert.InDelta(t, 1.0, plainVal, 1e-12)

	// f(-1, 2) = 100*(2-1)² + (1-(-1))² = 104
	tensorVal, plainVal = evalBoth(t, obj, []float64{-1, 2})
	assert.InDelta(t, 104.0, tensorVal, 1e-12)
	assert.InDelta(t, 104.0, plainVal, 1e-12)
}

func TestRosenbrock_Gradient(t *testing.T) {
	obj := objective.NewRosenbrock[Backend]()

	// Gradient vanishes at the minimum.
	grad := gradAt(t, obj, []float64{1, 1, 1})
	for i, g := range grad {
		assert.InDelta(t, 0.0, g, 1e-10, "grad[%d]", i)
	}

	// Check against central finite differences elsewhere.
	point := []float64{-0.5, 0.5}
	grad = gradAt(t, obj, point)
	eps := 1e-6
	for i := range point {
		probe := append([]float64(nil), point...)
		probe[i] += eps
		plus := obj.ValueAt(probe)
		probe[i] -= 2 * eps
		minus := obj.ValueAt(probe)
		numerical := (plus - minus) / (2 * eps)
		assert.InDelta(t, numerical, grad[i], 1e-4*(1+math.Abs(numerical)), "grad[%d]", i)
	}
}

func TestFunc_Adapter(t *testing.T) {
	obj := objective.NewFunc[Backend]("cubic-ish",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			return x.Mul(x).Mul(x).Sum()
		},
		func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s += v * v * v
			}
			return s
		},
	)

	assert.Equal(t, "cubic-ish", obj.Name())

	tensorVal, plainVal := evalBoth(t, obj, []float64{2, 3})
	assert.InDelta(t, 35.0, tensorVal, 1e-12)
	assert.InDelta(t, 35.0, plainVal, 1e-12)

	// d/dx x³ = 3x²
	grad := gradAt(t, obj, []float64{2})
	assert.InDelta(t, 12.0, grad[0], 1e-12)
}
