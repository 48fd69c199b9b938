package ops

import "github.com/minim-ml/minim/internal/tensor"

// AddScalarOp represents output = x + s for a scalar s.
//
// Backward: grad_x = outputGrad (the shift has derivative 1).
// The same rule covers SubScalar, which is recorded as AddScalar(-s).
type AddScalarOp struct{ unaryOp }

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient for a scalar shift.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

// MulScalarOp represents output = x * s for a scalar s.
//
// Backward: grad_x = outputGrad * s.
// The same rule covers DivScalar, which is recorded as MulScalar(1/s).
type MulScalarOp struct {
	unaryOp
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{
		unaryOp: unaryOp{inputs: []*tensor.RawTensor{x}, output: output},
		scalar:  scalar,
	}
}

// Backward computes the input gradient for scalar scaling.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}
