package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/minim-ml/minim/internal/tensor"
)

// binOp selects the element-wise binary kernel.
type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

// applyInplace updates a's buffer with (a op b). Only valid for same-shape
// operands when a's buffer is unique.
func applyInplace(kind binOp, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float64:
		av, bv := a.AsFloat64(), b.AsFloat64()
		switch kind {
		case opAdd:
			floats.Add(av, bv)
		case opSub:
			floats.Sub(av, bv)
		case opMul:
			floats.Mul(av, bv)
		case opDiv:
			floats.Div(av, bv)
		}
	case tensor.Float32:
		av, bv := a.AsFloat32(), b.AsFloat32()
		for i := range av {
			av[i] = apply32(kind, av[i], bv[i])
		}
	}
}

// applyVectorized writes (a op b) into dst for same-shape operands.
func applyVectorized(kind binOp, dst, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float64:
		dv := dst.AsFloat64()
		copy(dv, a.AsFloat64())
		bv := b.AsFloat64()
		switch kind {
		case opAdd:
			floats.Add(dv, bv)
		case opSub:
			floats.Sub(dv, bv)
		case opMul:
			floats.Mul(dv, bv)
		case opDiv:
			floats.Div(dv, bv)
		}
	case tensor.Float32:
		dv, av, bv := dst.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range dv {
			dv[i] = apply32(kind, av[i], bv[i])
		}
	}
}

// applyBroadcast writes (a op b) into dst, broadcasting operands to outShape.
func applyBroadcast(kind binOp, dst, a, b *tensor.RawTensor, outShape tensor.Shape) {
	aIdx := newBroadcastIndexer(a.Shape(), outShape)
	bIdx := newBroadcastIndexer(b.Shape(), outShape)
	n := outShape.NumElements()

	switch a.DType() {
	case tensor.Float64:
		dv, av, bv := dst.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := 0; i < n; i++ {
			dv[i] = apply64(kind, av[aIdx.at(i)], bv[bIdx.at(i)])
		}
	case tensor.Float32:
		dv, av, bv := dst.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := 0; i < n; i++ {
			dv[i] = apply32(kind, av[aIdx.at(i)], bv[bIdx.at(i)])
		}
	}
}

func apply64(kind binOp, a, b float64) float64 {
	switch kind {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	default:
		return a / b
	}
}

func apply32(kind binOp, a, b float32) float32 {
	switch kind {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	default:
		return a / b
	}
}

// broadcastIndexer maps a flat index in the output shape to the flat index
// of an operand that is broadcast to that shape. Dimensions align from the
// right; broadcast dimensions contribute stride 0.
type broadcastIndexer struct {
	outStrides []int
	opStrides  []int // per output dimension, 0 where the operand broadcasts
}

func newBroadcastIndexer(opShape, outShape tensor.Shape) broadcastIndexer {
	outStrides := outShape.ComputeStrides()
	opRealStrides := opShape.ComputeStrides()
	opStrides := make([]int, len(outShape))

	offset := len(outShape) - len(opShape)
	for d := range outShape {
		od := d - offset
		if od < 0 || opShape[od] == 1 {
			opStrides[d] = 0
		} else {
			opStrides[d] = opRealStrides[od]
		}
	}

	return broadcastIndexer{outStrides: outStrides, opStrides: opStrides}
}

func (bi broadcastIndexer) at(flat int) int {
	idx := 0
	rem := flat
	for d := range bi.outStrides {
		coord := rem / bi.outStrides[d]
		rem %= bi.outStrides[d]
		idx += coord * bi.opStrides[d]
	}
	return idx
}
