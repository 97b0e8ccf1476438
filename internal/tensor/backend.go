package tensor

// Backend is the complete set of primitive operations a compute device
// must provide. Layers, losses, optimizers, and automatic differentiation
// are all built from these primitives, so implementing Backend is the
// whole contract for a new device.
//
// Conventions:
//   - Binary arithmetic and comparisons follow NumPy broadcasting rules.
//   - Convolution and pooling use NCHW layout.
//   - Inputs are read-only unless IsUnique() allows in-place reuse.
//   - Shape or dtype misuse panics; only allocation and I/O return errors.
type Backend interface {
	// Identification.
	Name() string
	Device() Device

	// Element-wise arithmetic with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar arithmetic.
	AddScalar(x *RawTensor, s float64) *RawTensor
	MulScalar(x *RawTensor, s float64) *RawTensor
	PowScalar(x *RawTensor, p float64) *RawTensor

	// Matrix multiplication of 2D tensors: [m, k] x [k, n] -> [m, n].
	MatMul(a, b *RawTensor) *RawTensor

	// Convolution and pooling, including the backward kernels the
	// gradient tape routes through.
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	Conv2DInputBackward(input, kernel, outputGrad *RawTensor, stride, padding int) *RawTensor
	Conv2DKernelBackward(input, kernel, outputGrad *RawTensor, stride, padding int) *RawTensor
	MaxPool2D(input *RawTensor, kernelSize, stride int) *RawTensor
	MaxPool2DBackward(input, outputGrad *RawTensor, maxIndices []int, kernelSize, stride int) *RawTensor

	// Shape manipulation.
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Transpose(x *RawTensor, axes ...int) *RawTensor

	// Element-wise math (floating-point dtypes only).
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Neg(x *RawTensor) *RawTensor

	// Activations.
	ReLU(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor
	Softmax(x *RawTensor, dim int) *RawTensor

	// CrossEntropy computes mean negative log-likelihood of int32 class
	// targets [batch] under logits [batch, classes], as a scalar tensor.
	CrossEntropy(logits, targets *RawTensor) *RawTensor

	// Reductions. Dim arguments support negative indexing (-1 = last).
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Argmax(x *RawTensor, dim int) *RawTensor

	// Comparisons with broadcasting; results have dtype Bool.
	Greater(a, b *RawTensor) *RawTensor
	Equal(a, b *RawTensor) *RawTensor

	// Type conversion.
	Cast(x *RawTensor, dtype DataType) *RawTensor
}
