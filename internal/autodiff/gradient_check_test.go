package autodiff_test

import (
	"math"
	"testing"

	"github.com/minim-ml/minim/internal/autodiff"
	"github.com/minim-ml/minim/internal/tensor"
)

// numericalGradient computes df/dx_i with central finite differences.
func numericalGradient(f func([]float64) float64, x []float64, i int, epsilon float64) float64 {
	orig := x[i]
	x[i] = orig + epsilon
	plus := f(x)
	x[i] = orig - epsilon
	minus := f(x)
	x[i] = orig
	return (plus - minus) / (2 * epsilon)
}

// checkGradients compares autodiff gradients of a scalar expression against
// central finite differences at the given point.
func checkGradients(
	t *testing.T,
	name string,
	expr func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend],
	plain func(x []float64) float64,
	point []float64,
) {
	t.Helper()

	backend := newBackend()
	tape := backend.Tape()
	tape.Clear()
	tape.StartRecording()

	x := fromSlice(t, backend, point)
	y := expr(x)
	grads := autodiff.Backward(y, backend)
	tape.StopRecording()

	grad, ok := grads[x.Raw()]
	if !ok {
		t.Fatalf("%s: no gradient for x", name)
	}

	epsilon := 1e-6
	probe := append([]float64(nil), point...)
	for i := range point {
		want := numericalGradient(plain, probe, i, epsilon)
		got := grad.AsFloat64()[i]
		if math.Abs(got-want) > 1e-4*(1+math.Abs(want)) {
			t.Errorf("%s: grad[%d] = %g, numerical %g", name, i, got, want)
		}
	}
}

func TestGradient_Square(t *testing.T) {
	checkGradients(t, "sum(x²)",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			return x.Square().Sum()
		},
		func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s += v * v
			}
			return s
		},
		[]float64{-2, 0.5, 3},
	)
}

func TestGradient_MulDiv(t *testing.T) {
	checkGradients(t, "sum(x·x / (x+2))",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			return x.Mul(x).Div(x.AddScalar(2)).Sum()
		},
		func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s += v * v / (v + 2)
			}
			return s
		},
		[]float64{1, 2, 3},
	)
}

func TestGradient_ExpLog(t *testing.T) {
	checkGradients(t, "sum(exp(x) + log(x))",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			return x.Exp().Add(x.Log()).Sum()
		},
		func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s += math.Exp(v) + math.Log(v)
			}
			return s
		},
		[]float64{0.5, 1, 2},
	)
}

func TestGradient_Sqrt(t *testing.T) {
	checkGradients(t, "sum(sqrt(x))",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			return x.Sqrt().Sum()
		},
		func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s += math.Sqrt(v)
			}
			return s
		},
		[]float64{1, 4, 9},
	)
}

func TestGradient_ScalarOps(t *testing.T) {
	checkGradients(t, "sum(3(x-1)² / 2)",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			return x.SubScalar(1).Square().MulScalar(3).DivScalar(2).Sum()
		},
		func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s += 3 * (v - 1) * (v - 1) / 2
			}
			return s
		},
		[]float64{-1, 0, 2.5},
	)
}

func TestGradient_Neg(t *testing.T) {
	checkGradients(t, "sum(-x·x)",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			return x.Mul(x).Neg().Sum()
		},
		func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s -= v * v
			}
			return s
		},
		[]float64{1, -2},
	)
}

func TestGradient_SliceComposite(t *testing.T) {
	// Rosenbrock-style coupling through slices.
	checkGradients(t, "sum((x[1:] - x[:-1]²)²)",
		func(x *tensor.Tensor[float64, Backend]) *tensor.Tensor[float64, Backend] {
			n := x.NumElements()
			head := x.Slice(0, n-1)
			tail := x.Slice(1, n)
			return tail.Sub(head.Square()).Square().Sum()
		},
		func(x []float64) float64 {
			var s float64
			for i := 0; i < len(x)-1; i++ {
				d := x[i+1] - x[i]*x[i]
				s += d * d
			}
			return s
		},
		[]float64{0.5, 1.5, -1},
	)
}
