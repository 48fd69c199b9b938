package tensor

// Backend defines the interface that compute backends must implement.
// Backends handle the actual computation for tensor operations; the autodiff
// layer decorates a Backend to record operations for the backward pass.
//
// The operation set is scoped to what gradient-based minimization needs:
// element-wise arithmetic, a few unary math functions, reduction to a scalar,
// and 1-D slicing for objectives that couple neighboring coordinates.
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	SubScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	DivScalar(x *RawTensor, scalar float64) *RawTensor

	// Unary math operations (element-wise)
	Neg(x *RawTensor) *RawTensor    // -x
	Square(x *RawTensor) *RawTensor // x²
	Exp(x *RawTensor) *RawTensor    // exponential
	Log(x *RawTensor) *RawTensor    // natural logarithm
	Sqrt(x *RawTensor) *RawTensor   // square root

	// Reduction operations
	Sum(x *RawTensor) *RawTensor // total sum (scalar result)

	// Slicing (1-D): elements [start, end) as a new tensor
	Slice(x *RawTensor, start, end int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
