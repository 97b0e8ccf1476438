package ops

import "github.com/primer-ml/primer/internal/tensor"

// ReLUOp records output = max(0, x).
//
// The subgradient is 1 where x > 0 and 0 elsewhere; the mask is built
// from a comparison against zero, cast back to the input dtype.
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	mask := backend.Cast(backend.Greater(op.input, zerosLike(op.input)), op.input.DType())
	return []*tensor.RawTensor{backend.Mul(mask, outputGrad)}
}

func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ReLUOp) Output() *tensor.RawTensor   { return op.output }

// SigmoidOp records output = 1/(1+e^-x).
//
// d(sigmoid)/dx = sigmoid * (1 - sigmoid), built from the cached output.
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	oneMinus := backend.AddScalar(backend.Neg(op.output), 1)
	deriv := backend.Mul(oneMinus, op.output)
	return []*tensor.RawTensor{backend.Mul(deriv, outputGrad)}
}

func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SigmoidOp) Output() *tensor.RawTensor   { return op.output }

// TanhOp records output = tanh(x), with derivative 1 - tanh^2.
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	deriv := backend.AddScalar(backend.Neg(backend.PowScalar(op.output, 2)), 1)
	return []*tensor.RawTensor{backend.Mul(deriv, outputGrad)}
}

func (op *TanhOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *TanhOp) Output() *tensor.RawTensor   { return op.output }

// SoftmaxOp records output = softmax(x) along dim.
//
// The Jacobian-vector product collapses to
//
//	grad_x = s * (grad - sum(grad * s, dim))
//
// where s is the cached softmax output and the sum keeps dim for
// broadcasting back over the softmax axis.
type SoftmaxOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

func NewSoftmaxOp(input, output *tensor.RawTensor, dim int) *SoftmaxOp {
	return &SoftmaxOp{input: input, output: output, dim: dim}
}

func (op *SoftmaxOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gs := backend.Mul(outputGrad, op.output)
	dot := backend.SumDim(gs, op.dim, true)
	diff := backend.Sub(outputGrad, dot)
	return []*tensor.RawTensor{backend.Mul(diff, op.output)}
}

func (op *SoftmaxOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SoftmaxOp) Output() *tensor.RawTensor   { return op.output }
