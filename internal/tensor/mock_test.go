package tensor

// mockBackend satisfies Backend for tests that only exercise storage,
// creation, and accessor logic. Any compute method panics.
type mockBackend struct{}

func (mockBackend) Name() string   { return "Mock" }
func (mockBackend) Device() Device { return CPU }

func (mockBackend) Add(a, b *RawTensor) *RawTensor { panic("mock: Add") }
func (mockBackend) Sub(a, b *RawTensor) *RawTensor { panic("mock: Sub") }
func (mockBackend) Mul(a, b *RawTensor) *RawTensor { panic("mock: Mul") }
func (mockBackend) Div(a, b *RawTensor) *RawTensor { panic("mock: Div") }

func (mockBackend) AddScalar(x *RawTensor, s float64) *RawTensor { panic("mock: AddScalar") }
func (mockBackend) MulScalar(x *RawTensor, s float64) *RawTensor { panic("mock: MulScalar") }
func (mockBackend) PowScalar(x *RawTensor, p float64) *RawTensor { panic("mock: PowScalar") }

func (mockBackend) MatMul(a, b *RawTensor) *RawTensor { panic("mock: MatMul") }

func (mockBackend) Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor {
	panic("mock: Conv2D")
}

func (mockBackend) Conv2DInputBackward(input, kernel, outputGrad *RawTensor, stride, padding int) *RawTensor {
	panic("mock: Conv2DInputBackward")
}

func (mockBackend) Conv2DKernelBackward(input, kernel, outputGrad *RawTensor, stride, padding int) *RawTensor {
	panic("mock: Conv2DKernelBackward")
}

func (mockBackend) MaxPool2D(input *RawTensor, kernelSize, stride int) *RawTensor {
	panic("mock: MaxPool2D")
}

func (mockBackend) MaxPool2DBackward(input, outputGrad *RawTensor, maxIndices []int, kernelSize, stride int) *RawTensor {
	panic("mock: MaxPool2DBackward")
}

func (mockBackend) Reshape(x *RawTensor, shape Shape) *RawTensor      { panic("mock: Reshape") }
func (mockBackend) Transpose(x *RawTensor, axes ...int) *RawTensor    { panic("mock: Transpose") }
func (mockBackend) Exp(x *RawTensor) *RawTensor                       { panic("mock: Exp") }
func (mockBackend) Log(x *RawTensor) *RawTensor                       { panic("mock: Log") }
func (mockBackend) Sqrt(x *RawTensor) *RawTensor                      { panic("mock: Sqrt") }
func (mockBackend) Neg(x *RawTensor) *RawTensor                       { panic("mock: Neg") }
func (mockBackend) ReLU(x *RawTensor) *RawTensor                      { panic("mock: ReLU") }
func (mockBackend) Sigmoid(x *RawTensor) *RawTensor                   { panic("mock: Sigmoid") }
func (mockBackend) Tanh(x *RawTensor) *RawTensor                      { panic("mock: Tanh") }
func (mockBackend) Softmax(x *RawTensor, dim int) *RawTensor          { panic("mock: Softmax") }
func (mockBackend) CrossEntropy(logits, targets *RawTensor) *RawTensor {
	panic("mock: CrossEntropy")
}

func (mockBackend) Sum(x *RawTensor) *RawTensor                             { panic("mock: Sum") }
func (mockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor   { panic("mock: SumDim") }
func (mockBackend) MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor  { panic("mock: MeanDim") }
func (mockBackend) MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor   { panic("mock: MaxDim") }
func (mockBackend) Argmax(x *RawTensor, dim int) *RawTensor                 { panic("mock: Argmax") }
func (mockBackend) Greater(a, b *RawTensor) *RawTensor                      { panic("mock: Greater") }
func (mockBackend) Equal(a, b *RawTensor) *RawTensor                        { panic("mock: Equal") }
func (mockBackend) Cast(x *RawTensor, dtype DataType) *RawTensor            { panic("mock: Cast") }

// compile-time interface check
var _ Backend = mockBackend{}
