package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/minim-ml/minim/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (c *Backend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := mustNewRaw("addscalar", x.Shape(), x.DType(), c.device)
	switch x.DType() {
	case tensor.Float64:
		dv := result.AsFloat64()
		copy(dv, x.AsFloat64())
		floats.AddConst(scalar, dv)
	case tensor.Float32:
		dv, xv := result.AsFloat32(), x.AsFloat32()
		s := float32(scalar)
		for i := range dv {
			dv[i] = xv[i] + s
		}
	}
	return result
}

// SubScalar subtracts a scalar from every element.
func (c *Backend) SubScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return c.AddScalar(x, -scalar)
}

// MulScalar multiplies every element by a scalar.
func (c *Backend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := mustNewRaw("mulscalar", x.Shape(), x.DType(), c.device)
	switch x.DType() {
	case tensor.Float64:
		floats.ScaleTo(result.AsFloat64(), scalar, x.AsFloat64())
	case tensor.Float32:
		dv, xv := result.AsFloat32(), x.AsFloat32()
		s := float32(scalar)
		for i := range dv {
			dv[i] = xv[i] * s
		}
	}
	return result
}

// DivScalar divides every element by a scalar.
func (c *Backend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	if scalar == 0 {
		panic("divscalar: division by zero")
	}
	return c.MulScalar(x, 1/scalar)
}

// Neg negates every element.
func (c *Backend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return c.MulScalar(x, -1)
}

// Square squares every element.
func (c *Backend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw("square", x.Shape(), x.DType(), c.device)
	switch x.DType() {
	case tensor.Float64:
		floats.MulTo(result.AsFloat64(), x.AsFloat64(), x.AsFloat64())
	case tensor.Float32:
		dv, xv := result.AsFloat32(), x.AsFloat32()
		for i := range dv {
			dv[i] = xv[i] * xv[i]
		}
	}
	return result
}

// Exp computes the element-wise exponential.
func (c *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("exp", x, math.Exp)
}

// Log computes the element-wise natural logarithm.
// Input values must be positive.
func (c *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("log", x, math.Log)
}

// Sqrt computes the element-wise square root.
func (c *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("sqrt", x, math.Sqrt)
}

func (c *Backend) unary(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := mustNewRaw(name, x.Shape(), x.DType(), c.device)
	switch x.DType() {
	case tensor.Float64:
		dv, xv := result.AsFloat64(), x.AsFloat64()
		for i := range dv {
			dv[i] = f(xv[i])
		}
	case tensor.Float32:
		dv, xv := result.AsFloat32(), x.AsFloat32()
		for i := range dv {
			dv[i] = float32(f(float64(xv[i])))
		}
	}
	return result
}

// Sum reduces a tensor to the scalar sum of its elements.
func (c *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw("sum", tensor.Shape{}, x.DType(), c.device)
	switch x.DType() {
	case tensor.Float64:
		result.AsFloat64()[0] = floats.Sum(x.AsFloat64())
	case tensor.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		result.AsFloat32()[0] = sum
	}
	return result
}

// Slice returns elements [start, end) of a 1-D tensor as a new tensor.
func (c *Backend) Slice(x *tensor.RawTensor, start, end int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 1 {
		panic(fmt.Sprintf("slice: only 1-D tensors supported, got shape %v", shape))
	}
	if start < 0 || end > shape[0] || start >= end {
		panic(fmt.Sprintf("slice: invalid range [%d, %d) for length %d", start, end, shape[0]))
	}

	result := mustNewRaw("slice", tensor.Shape{end - start}, x.DType(), c.device)
	switch x.DType() {
	case tensor.Float64:
		copy(result.AsFloat64(), x.AsFloat64()[start:end])
	case tensor.Float32:
		copy(result.AsFloat32(), x.AsFloat32()[start:end])
	}
	return result
}
