package ops

import (
	"fmt"

	"github.com/minim-ml/minim/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// Needed when broadcasting was used in the forward pass: the gradient of a
// broadcast input is the sum of the output gradient over the broadcast
// dimensions.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone when shapes already match so later accumulation cannot alias
	// a gradient shared with another operation.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	// Scalar target: sum everything.
	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// General reduction: sum over dimensions where the target is 1 or absent.
	result := sumToShape(grad, targetShape)
	return result
}

// sumToShape sums grad over broadcast dimensions so the result has targetShape.
// Shapes align from the right, as in the forward broadcast.
func sumToShape(grad *tensor.RawTensor, targetShape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.NewRaw(targetShape, grad.DType(), grad.Device())
	if err != nil {
		panic(fmt.Sprintf("sumToShape: %v", err))
	}

	gradShape := grad.Shape()
	gradStrides := gradShape.ComputeStrides()
	targetStrides := targetShape.ComputeStrides()
	offset := len(gradShape) - len(targetShape)

	n := gradShape.NumElements()
	switch grad.DType() {
	case tensor.Float64:
		gv, rv := grad.AsFloat64(), result.AsFloat64()
		for i := 0; i < n; i++ {
			rv[reducedIndex(i, gradShape, gradStrides, targetShape, targetStrides, offset)] += gv[i]
		}
	case tensor.Float32:
		gv, rv := grad.AsFloat32(), result.AsFloat32()
		for i := 0; i < n; i++ {
			rv[reducedIndex(i, gradShape, gradStrides, targetShape, targetStrides, offset)] += gv[i]
		}
	}

	return result
}

// reducedIndex maps a flat index in the gradient to the flat index of the
// reduced target it accumulates into.
func reducedIndex(flat int, gradShape tensor.Shape, gradStrides []int, targetShape tensor.Shape, targetStrides []int, offset int) int {
	idx := 0
	rem := flat
	for d := range gradShape {
		coord := rem / gradStrides[d]
		rem %= gradStrides[d]

		td := d - offset
		if td < 0 || targetShape[td] == 1 {
			continue
		}
		idx += coord * targetStrides[td]
	}
	return idx
}
