package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/minim-ml/minim/internal/tensor"
)

// ClipGradNorm clips the global gradient norm of the given parameters to
// maxNorm, applied in place on the gradient map between the backward pass and
// the optimizer step.
//
// The global norm is the normType-norm of all parameter gradients
// concatenated. When it exceeds maxNorm, every gradient is scaled by
// maxNorm / globalNorm. normType 2 is the usual Euclidean clipping;
// math.Inf(1) clips by the largest absolute component.
//
// Returns the global norm before clipping.
func ClipGradNorm[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor, maxNorm, normType float64) float64 {
	if maxNorm <= 0 {
		return 0
	}
	if normType == 0 {
		normType = 2
	}

	gradVecs := make([][]float64, 0, len(params))
	for _, param := range params {
		if grad := gradientFor(param, grads); grad != nil {
			gradVecs = append(gradVecs, grad)
		}
	}
	if len(gradVecs) == 0 {
		return 0
	}

	globalNorm := globalNorm(gradVecs, normType)
	if globalNorm <= maxNorm || globalNorm == 0 {
		return globalNorm
	}

	scale := maxNorm / globalNorm
	for _, grad := range gradVecs {
		floats.Scale(scale, grad)
	}

	return globalNorm
}

// ClipGradValue clamps every gradient component of the given parameters to
// the range [-maxValue, maxValue], in place.
func ClipGradValue[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor, maxValue float64) {
	if maxValue <= 0 {
		return
	}

	for _, param := range params {
		grad := gradientFor(param, grads)
		if grad == nil {
			continue
		}
		for i, g := range grad {
			grad[i] = math.Max(-maxValue, math.Min(maxValue, g))
		}
	}
}

// globalNorm computes the normType-norm of the concatenation of the vectors.
func globalNorm(vecs [][]float64, normType float64) float64 {
	if math.IsInf(normType, 1) {
		maxAbs := 0.0
		for _, v := range vecs {
			maxAbs = math.Max(maxAbs, floats.Norm(v, normType))
		}
		return maxAbs
	}

	total := 0.0
	for _, v := range vecs {
		total += math.Pow(floats.Norm(v, normType), normType)
	}
	return math.Pow(total, 1/normType)
}
