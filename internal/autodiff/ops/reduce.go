package ops

import (
	"fmt"

	"github.com/minim-ml/minim/internal/tensor"
)

// SumOp represents reduction to the scalar sum: output = Σ x_i.
//
// Backward: every element contributed with weight 1, so the scalar output
// gradient is broadcast to the input shape.
type SumOp struct{ unaryOp }

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient for the sum reduction.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]

	grad, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("sum backward: %v", err))
	}

	switch x.DType() {
	case tensor.Float64:
		g := outputGrad.AsFloat64()[0]
		gv := grad.AsFloat64()
		for i := range gv {
			gv[i] = g
		}
	case tensor.Float32:
		g := outputGrad.AsFloat32()[0]
		gv := grad.AsFloat32()
		for i := range gv {
			gv[i] = g
		}
	}

	return []*tensor.RawTensor{grad}
}

// SliceOp represents 1-D slicing: output = x[start:end].
//
// Backward: the output gradient is scattered back into a zero tensor of the
// input's shape at [start, end). Overlapping slices of the same input
// accumulate naturally on the tape.
type SliceOp struct {
	unaryOp
	start int
	end   int
}

// NewSliceOp creates a new SliceOp.
func NewSliceOp(x, output *tensor.RawTensor, start, end int) *SliceOp {
	return &SliceOp{
		unaryOp: unaryOp{inputs: []*tensor.RawTensor{x}, output: output},
		start:   start,
		end:     end,
	}
}

// Backward scatters the output gradient into the input's index range.
func (op *SliceOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]

	grad, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("slice backward: %v", err))
	}

	switch x.DType() {
	case tensor.Float64:
		copy(grad.AsFloat64()[op.start:op.end], outputGrad.AsFloat64())
	case tensor.Float32:
		copy(grad.AsFloat32()[op.start:op.end], outputGrad.AsFloat32())
	}

	return []*tensor.RawTensor{grad}
}
