package tensor

// Tensor operation methods. Each delegates to the backend and wraps the
// resulting RawTensor; compute lives in the Backend implementation.

// =============================================================================
// Element-wise arithmetic
// =============================================================================

// Add returns t + other with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub returns t - other with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul returns the element-wise product t * other with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div returns the element-wise quotient t / other with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Div(t.raw, other.raw), t.backend)
}

// AddScalar returns t + s.
func (t *Tensor[T, B]) AddScalar(s float64) *Tensor[T, B] {
	return New[T](t.backend.AddScalar(t.raw, s), t.backend)
}

// MulScalar returns t * s.
func (t *Tensor[T, B]) MulScalar(s float64) *Tensor[T, B] {
	return New[T](t.backend.MulScalar(t.raw, s), t.backend)
}

// PowScalar returns t raised element-wise to the power p.
func (t *Tensor[T, B]) PowScalar(p float64) *Tensor[T, B] {
	return New[T](t.backend.PowScalar(t.raw, p), t.backend)
}

// =============================================================================
// Linear algebra, convolution, pooling
// =============================================================================

// MatMul returns the matrix product of two 2D tensors.
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Conv2D convolves an NCHW input with an [outC, inC, kH, kW] kernel.
func (t *Tensor[T, B]) Conv2D(kernel *Tensor[T, B], stride, padding int) *Tensor[T, B] {
	return New[T](t.backend.Conv2D(t.raw, kernel.raw, stride, padding), t.backend)
}

// MaxPool2D applies max pooling over an NCHW input.
func (t *Tensor[T, B]) MaxPool2D(kernelSize, stride int) *Tensor[T, B] {
	return New[T](t.backend.MaxPool2D(t.raw, kernelSize, stride), t.backend)
}

// =============================================================================
// Shape manipulation
// =============================================================================

// Reshape returns a tensor with the same elements and a new shape.
func (t *Tensor[T, B]) Reshape(shape Shape) *Tensor[T, B] {
	return New[T](t.backend.Reshape(t.raw, shape), t.backend)
}

// Transpose permutes dimensions. With no arguments the order is reversed.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return New[T](t.backend.Transpose(t.raw, axes...), t.backend)
}

// =============================================================================
// Element-wise math and activations
// =============================================================================

// Exp returns e raised element-wise to t.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	return New[T](t.backend.Exp(t.raw), t.backend)
}

// Log returns the element-wise natural logarithm.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	return New[T](t.backend.Log(t.raw), t.backend)
}

// Sqrt returns the element-wise square root.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	return New[T](t.backend.Sqrt(t.raw), t.backend)
}

// Neg returns the element-wise negation.
func (t *Tensor[T, B]) Neg() *Tensor[T, B] {
	return New[T](t.backend.Neg(t.raw), t.backend)
}

// ReLU returns max(0, t) element-wise.
func (t *Tensor[T, B]) ReLU() *Tensor[T, B] {
	return New[T](t.backend.ReLU(t.raw), t.backend)
}

// Sigmoid returns 1 / (1 + exp(-t)) element-wise.
func (t *Tensor[T, B]) Sigmoid() *Tensor[T, B] {
	return New[T](t.backend.Sigmoid(t.raw), t.backend)
}

// Tanh returns the element-wise hyperbolic tangent.
func (t *Tensor[T, B]) Tanh() *Tensor[T, B] {
	return New[T](t.backend.Tanh(t.raw), t.backend)
}

// Softmax normalizes along dim so slices sum to one.
func (t *Tensor[T, B]) Softmax(dim int) *Tensor[T, B] {
	return New[T](t.backend.Softmax(t.raw, dim), t.backend)
}

// =============================================================================
// Reductions
// =============================================================================

// Sum reduces all elements to a single-element tensor.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return New[T](t.backend.Sum(t.raw), t.backend)
}

// SumDim sums along dim. keepDim retains the reduced dimension with size 1.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T](t.backend.SumDim(t.raw, dim, keepDim), t.backend)
}

// MeanDim averages along dim.
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T](t.backend.MeanDim(t.raw, dim, keepDim), t.backend)
}

// MaxDim takes the maximum along dim.
func (t *Tensor[T, B]) MaxDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T](t.backend.MaxDim(t.raw, dim, keepDim), t.backend)
}

// Argmax returns the int32 indices of the maxima along dim.
func (t *Tensor[T, B]) Argmax(dim int) *Tensor[int32, B] {
	return New[int32](t.backend.Argmax(t.raw, dim), t.backend)
}

// =============================================================================
// Comparisons and conversion
// =============================================================================

// Greater returns the element-wise comparison t > other as a bool tensor.
func (t *Tensor[T, B]) Greater(other *Tensor[T, B]) *Tensor[bool, B] {
	return New[bool](t.backend.Greater(t.raw, other.raw), t.backend)
}

// Equal returns the element-wise comparison t == other as a bool tensor.
func (t *Tensor[T, B]) Equal(other *Tensor[T, B]) *Tensor[bool, B] {
	return New[bool](t.backend.Equal(t.raw, other.raw), t.backend)
}

// Cast converts a tensor to element type U.
//
// Example:
//
//	mask := x.Greater(zeros)            // *Tensor[bool, B]
//	ones := tensor.Cast[float32](mask)  // *Tensor[float32, B]
func Cast[U, T DType, B Backend](t *Tensor[T, B]) *Tensor[U, B] {
	return New[U](t.backend.Cast(t.raw, DataTypeOf[U]()), t.backend)
}

// CrossEntropy returns the scalar mean negative log-likelihood of int32
// class targets under this tensor interpreted as [batch, classes] logits.
func (t *Tensor[T, B]) CrossEntropy(targets *Tensor[int32, B]) *Tensor[T, B] {
	return New[T](t.backend.CrossEntropy(t.raw, targets.raw), t.backend)
}
