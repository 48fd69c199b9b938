package ops

import "github.com/minim-ml/minim/internal/tensor"

// unaryOp is the shared shape of single-input operations.
type unaryOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// Inputs returns the input tensors [x].
func (op *unaryOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the output tensor.
func (op *unaryOp) Output() *tensor.RawTensor { return op.output }

// NegOp represents negation: output = -x.
//
// Backward: grad_x = -outputGrad.
type NegOp struct{ unaryOp }

// NewNegOp creates a new NegOp.
func NewNegOp(x, output *tensor.RawTensor) *NegOp {
	return &NegOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient for negation.
func (op *NegOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Neg(outputGrad)}
}

// SquareOp represents element-wise squaring: output = x².
//
// Backward: grad_x = 2 * x * outputGrad.
type SquareOp struct{ unaryOp }

// NewSquareOp creates a new SquareOp.
func NewSquareOp(x, output *tensor.RawTensor) *SquareOp {
	return &SquareOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient for squaring.
func (op *SquareOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	defer outputGrad.ForceNonUnique()()
	defer x.ForceNonUnique()()

	grad := backend.Mul(backend.MulScalar(x, 2), outputGrad)
	return []*tensor.RawTensor{grad}
}

// ExpOp represents the element-wise exponential: output = exp(x).
//
// Backward: grad_x = outputGrad * exp(x) = outputGrad * output.
type ExpOp struct{ unaryOp }

// NewExpOp creates a new ExpOp.
func NewExpOp(x, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient for the exponential.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()
	defer op.output.ForceNonUnique()()

	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// LogOp represents the element-wise natural logarithm: output = log(x).
//
// Backward: grad_x = outputGrad / x.
type LogOp struct{ unaryOp }

// NewLogOp creates a new LogOp.
func NewLogOp(x, output *tensor.RawTensor) *LogOp {
	return &LogOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient for the logarithm.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	defer outputGrad.ForceNonUnique()()
	defer x.ForceNonUnique()()

	return []*tensor.RawTensor{backend.Div(outputGrad, x)}
}

// SqrtOp represents the element-wise square root: output = sqrt(x).
//
// Backward: grad_x = outputGrad / (2 * sqrt(x)) = outputGrad / (2 * output).
type SqrtOp struct{ unaryOp }

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(x, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient for the square root.
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()
	defer op.output.ForceNonUnique()()

	return []*tensor.RawTensor{backend.Div(outputGrad, backend.MulScalar(op.output, 2))}
}
