package optim_test

import (
	"math"
	"testing"

	"github.com/minim-ml/minim/internal/autodiff"
	"github.com/minim-ml/minim/internal/backend/cpu"
	"github.com/minim-ml/minim/internal/optim"
	"github.com/minim-ml/minim/internal/tensor"
)

type Backend = *autodiff.Backend[*cpu.Backend]

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func newParam(t *testing.T, backend Backend, name string, data []float64) *optim.Parameter[Backend] {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape{len(data)}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return optim.NewParameter(name, x)
}

func gradMap(t *testing.T, param *optim.Parameter[Backend], grad []float64) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{len(grad)}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat64(), grad)
	return map[*tensor.RawTensor]*tensor.RawTensor{
		param.Tensor().Raw(): raw,
	}
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{2.0})

	optimizer := optim.NewSGD([]*optim.Parameter[Backend]{param},
		optim.SGDConfig{LR: 0.1})

	optimizer.Step(gradMap(t, param, []float64{1.0}))

	// Expected: x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	actual := param.Tensor().Data()[0]
	if !floatEqual(actual, 1.9, 1e-12) {
		t.Errorf("SGD update: got %f, want 1.9", actual)
	}
}

// TestSGD_WithMomentum tests SGD with momentum over two steps.
func TestSGD_WithMomentum(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0})

	optimizer := optim.NewSGD([]*optim.Parameter[Backend]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// Step 1: v = 0.9*0 + 1.0 = 1.0, x = 1.0 - 0.1*1.0 = 0.9
	optimizer.Step(gradMap(t, param, []float64{1.0}))
	if !floatEqual(param.Tensor().Data()[0], 0.9, 1e-12) {
		t.Fatalf("step 1: got %f, want 0.9", param.Tensor().Data()[0])
	}

	// Step 2: v = 0.9*1.0 + 1.0 = 1.9, x = 0.9 - 0.1*1.9 = 0.71
	optimizer.Step(gradMap(t, param, []float64{1.0}))
	if !floatEqual(param.Tensor().Data()[0], 0.71, 1e-12) {
		t.Errorf("step 2: got %f, want 0.71", param.Tensor().Data()[0])
	}
}

// TestSGD_Nesterov tests the lookahead update.
func TestSGD_Nesterov(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0})

	optimizer := optim.NewSGD([]*optim.Parameter[Backend]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9, Nesterov: true})

	// Step 1: v = 1.0, x = 1.0 - 0.1*(1.0 + 0.9*1.0) = 0.81
	optimizer.Step(gradMap(t, param, []float64{1.0}))
	if !floatEqual(param.Tensor().Data()[0], 0.81, 1e-12) {
		t.Errorf("nesterov step: got %f, want 0.81", param.Tensor().Data()[0])
	}
}

// TestSGD_WeightDecay tests the L2 penalty contribution.
func TestSGD_WeightDecay(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{2.0})

	optimizer := optim.NewSGD([]*optim.Parameter[Backend]{param},
		optim.SGDConfig{LR: 0.1, WeightDecay: 0.5})

	// Effective grad = 1.0 + 0.5*2.0 = 2.0, x = 2.0 - 0.1*2.0 = 1.8
	optimizer.Step(gradMap(t, param, []float64{1.0}))
	if !floatEqual(param.Tensor().Data()[0], 1.8, 1e-12) {
		t.Errorf("weight decay step: got %f, want 1.8", param.Tensor().Data()[0])
	}
}

// TestSGD_MissingGradient tests that a parameter without a gradient is left
// untouched.
func TestSGD_MissingGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{2.0})

	optimizer := optim.NewSGD([]*optim.Parameter[Backend]{param},
		optim.SGDConfig{LR: 0.1})

	optimizer.Step(map[*tensor.RawTensor]*tensor.RawTensor{})
	if param.Tensor().Data()[0] != 2.0 {
		t.Errorf("parameter changed without a gradient: %f", param.Tensor().Data()[0])
	}
}

// TestSGD_Defaults tests the default learning rate.
func TestSGD_Defaults(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{0.0})

	optimizer := optim.NewSGD([]*optim.Parameter[Backend]{param}, optim.SGDConfig{})
	if optimizer.LR() != 0.01 {
		t.Errorf("default LR = %f, want 0.01", optimizer.LR())
	}

	optimizer.SetLR(0.5)
	if optimizer.LR() != 0.5 {
		t.Errorf("LR after SetLR = %f, want 0.5", optimizer.LR())
	}
}

// TestAdam_FirstStep tests the first Adam step, where bias correction makes
// the update exactly lr * sign(grad) up to eps.
func TestAdam_FirstStep(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0, -2.0})

	optimizer := optim.NewAdam([]*optim.Parameter[Backend]{param},
		optim.AdamConfig{LR: 0.1})

	// t=1: m_hat = g, v_hat = g², update = lr * g/(|g|+eps) ≈ lr * sign(g)
	optimizer.Step(gradMap(t, param, []float64{3.0, -0.5}))

	data := param.Tensor().Data()
	if !floatEqual(data[0], 1.0-0.1, 1e-6) {
		t.Errorf("adam[0]: got %f, want %f", data[0], 0.9)
	}
	if !floatEqual(data[1], -2.0+0.1, 1e-6) {
		t.Errorf("adam[1]: got %f, want %f", data[1], -1.9)
	}
	if optimizer.Timestep() != 1 {
		t.Errorf("Timestep() = %d, want 1", optimizer.Timestep())
	}
}

// TestAdam_SecondStep tests the moment accumulation against hand-computed
// values.
func TestAdam_SecondStep(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0})

	optimizer := optim.NewAdam([]*optim.Parameter[Backend]{param},
		optim.AdamConfig{LR: 0.1, Betas: [2]float64{0.9, 0.999}, Eps: 1e-8})

	optimizer.Step(gradMap(t, param, []float64{1.0}))
	optimizer.Step(gradMap(t, param, []float64{1.0}))

	// Step 1: m=0.1, v=0.001, m_hat=1, v_hat=1, x = 1 - 0.1*1/(1+1e-8)
	// Step 2: m=0.19, v=0.001999
	//         m_hat = 0.19/0.19 = 1
	//         v_hat = 0.001999/0.001999 = 1
	//         x -= 0.1*1/(1+1e-8) again
	want := 1.0 - 2*0.1/(1+1e-8)
	if !floatEqual(param.Tensor().Data()[0], want, 1e-9) {
		t.Errorf("adam second step: got %f, want %f", param.Tensor().Data()[0], want)
	}
}

// TestAdam_Defaults tests default hyperparameters.
func TestAdam_Defaults(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{0.0})

	optimizer := optim.NewAdam([]*optim.Parameter[Backend]{param}, optim.AdamConfig{})
	if optimizer.LR() != 0.001 {
		t.Errorf("default LR = %f, want 0.001", optimizer.LR())
	}
}

// TestClipGradNorm_Scaling tests clipping a gradient above the threshold.
func TestClipGradNorm_Scaling(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{0, 0})

	// ||(3, 4)||_2 = 5
	grads := gradMap(t, param, []float64{3.0, 4.0})
	params := []*optim.Parameter[Backend]{param}

	norm := optim.ClipGradNorm(params, grads, 1.0, 2)
	if !floatEqual(norm, 5.0, 1e-12) {
		t.Errorf("pre-clip norm = %f, want 5", norm)
	}

	grad := grads[param.Tensor().Raw()].AsFloat64()
	// Scaled by 1/5: (0.6, 0.8), new norm 1.
	if !floatEqual(grad[0], 0.6, 1e-12) || !floatEqual(grad[1], 0.8, 1e-12) {
		t.Errorf("clipped grad = %v, want [0.6 0.8]", grad)
	}
}

// TestClipGradNorm_BelowThreshold tests that a small gradient is untouched.
func TestClipGradNorm_BelowThreshold(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{0, 0})

	grads := gradMap(t, param, []float64{0.3, 0.4})
	params := []*optim.Parameter[Backend]{param}

	norm := optim.ClipGradNorm(params, grads, 1.0, 2)
	if !floatEqual(norm, 0.5, 1e-12) {
		t.Errorf("norm = %f, want 0.5", norm)
	}

	grad := grads[param.Tensor().Raw()].AsFloat64()
	if grad[0] != 0.3 || grad[1] != 0.4 {
		t.Errorf("gradient below threshold was modified: %v", grad)
	}
}

// TestClipGradNorm_InfNorm tests clipping with the max-abs norm.
func TestClipGradNorm_InfNorm(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{0, 0})

	grads := gradMap(t, param, []float64{-4.0, 2.0})
	params := []*optim.Parameter[Backend]{param}

	norm := optim.ClipGradNorm(params, grads, 1.0, math.Inf(1))
	if !floatEqual(norm, 4.0, 1e-12) {
		t.Errorf("inf norm = %f, want 4", norm)
	}

	grad := grads[param.Tensor().Raw()].AsFloat64()
	if !floatEqual(grad[0], -1.0, 1e-12) || !floatEqual(grad[1], 0.5, 1e-12) {
		t.Errorf("clipped grad = %v, want [-1 0.5]", grad)
	}
}

// TestClipGradValue tests per-component clamping.
func TestClipGradValue(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{0, 0, 0})

	grads := gradMap(t, param, []float64{-3.0, 0.5, 7.0})
	params := []*optim.Parameter[Backend]{param}

	optim.ClipGradValue(params, grads, 1.0)

	grad := grads[param.Tensor().Raw()].AsFloat64()
	want := []float64{-1.0, 0.5, 1.0}
	for i, w := range want {
		if grad[i] != w {
			t.Errorf("grad[%d] = %v, want %v", i, grad[i], w)
		}
	}
}

// TestParameter_IdentityStableAcrossSteps tests that in-place updates keep
// the raw tensor usable as a gradient map key across steps.
func TestParameter_IdentityStableAcrossSteps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0})
	raw := param.Tensor().Raw()

	optimizer := optim.NewSGD([]*optim.Parameter[Backend]{param},
		optim.SGDConfig{LR: 0.5})

	for i := 0; i < 3; i++ {
		optimizer.Step(gradMap(t, param, []float64{1.0}))
	}

	if param.Tensor().Raw() != raw {
		t.Error("parameter raw tensor identity changed across steps")
	}
	// 1.0 - 3 * 0.5 = -0.5
	if !floatEqual(param.Tensor().Data()[0], -0.5, 1e-12) {
		t.Errorf("after 3 steps: got %f, want -0.5", param.Tensor().Data()[0])
	}
}
