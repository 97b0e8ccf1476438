package ops

import "github.com/primer-ml/primer/internal/tensor"

// AddScalarOp records output = x + s. The gradient passes through
// unchanged.
type AddScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewAddScalarOp(input, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{input: input, output: output}
}

func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

func (op *AddScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *AddScalarOp) Output() *tensor.RawTensor   { return op.output }

// MulScalarOp records output = x * s.
type MulScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar float64
}

func NewMulScalarOp(input, output *tensor.RawTensor, s float64) *MulScalarOp {
	return &MulScalarOp{input: input, output: output, scalar: s}
}

func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MulScalarOp) Output() *tensor.RawTensor   { return op.output }

// PowScalarOp records output = x^p.
//
// d(x^p)/dx = p * x^(p-1).
type PowScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	power  float64
}

func NewPowScalarOp(input, output *tensor.RawTensor, p float64) *PowScalarOp {
	return &PowScalarOp{input: input, output: output, power: p}
}

func (op *PowScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	deriv := backend.MulScalar(backend.PowScalar(op.input, op.power-1), op.power)
	return []*tensor.RawTensor{backend.Mul(deriv, outputGrad)}
}

func (op *PowScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *PowScalarOp) Output() *tensor.RawTensor   { return op.output }
