// Package cpu implements the CPU compute backend.
//
// Float64 kernels delegate to gonum's floats package; float32 kernels are
// plain loops since gonum only operates on float64 slices.
package cpu

import (
	"fmt"

	"github.com/minim-ml/minim/internal/tensor"
)

// Backend implements tensor operations on CPU.
type Backend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (c *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (c *Backend) Device() tensor.Device {
	return c.device
}

// binaryOp dispatches an element-wise binary operation with broadcasting and
// an inplace fast path when the left operand's buffer is unique.
func (c *Backend) binaryOp(name string, a, b *tensor.RawTensor, kind binOp) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			applyInplace(kind, a, b)
			return a
		}
		result := mustNewRaw(name, outShape, a.DType(), c.device)
		applyVectorized(kind, result, a, b)
		return result
	}

	result := mustNewRaw(name, outShape, a.DType(), c.device)
	applyBroadcast(kind, result, a, b, outShape)
	return result
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (c *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("add", a, b, opAdd)
}

// Sub performs element-wise subtraction with broadcasting.
func (c *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("sub", a, b, opSub)
}

// Mul performs element-wise multiplication with broadcasting.
func (c *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("mul", a, b, opMul)
}

// Div performs element-wise division with broadcasting.
func (c *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("div", a, b, opDiv)
}

// mustNewRaw allocates a result tensor or panics; shape validity is
// established by the caller.
func mustNewRaw(name string, shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	return result
}
