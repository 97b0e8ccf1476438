package ops

import "github.com/primer-ml/primer/internal/tensor"

// SumOp records output = sum(x), a full reduction to one element.
// Every input element contributed with weight 1, so the scalar output
// gradient is broadcast back over the whole input.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(onesLike(op.input), outputGrad)}
}

func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SumOp) Output() *tensor.RawTensor   { return op.output }

// SumDimOp records output = sum(x, dim).
type SumDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		input:   input,
		output:  output,
		dim:     normalizeDim(dim, len(input.Shape())),
		keepDim: keepDim,
	}
}

// Backward restores the reduced dimension at size 1, then broadcasts the
// gradient back across it.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{expandDim(outputGrad, op.input, op.dim, op.keepDim, backend)}
}

func (op *SumDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SumDimOp) Output() *tensor.RawTensor   { return op.output }

// MeanDimOp records output = mean(x, dim). The backward pass is the sum
// gradient scaled by 1/n for the reduced dimension's size.
type MeanDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

func NewMeanDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *MeanDimOp {
	return &MeanDimOp{
		input:   input,
		output:  output,
		dim:     normalizeDim(dim, len(input.Shape())),
		keepDim: keepDim,
	}
}

func (op *MeanDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	expanded := expandDim(outputGrad, op.input, op.dim, op.keepDim, backend)
	n := op.input.Shape()[op.dim]
	return []*tensor.RawTensor{backend.MulScalar(expanded, 1/float64(n))}
}

func (op *MeanDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MeanDimOp) Output() *tensor.RawTensor   { return op.output }

// MaxDimOp records output = max(x, dim). The gradient is routed only to
// the position that held the maximum in each reduced slice; ties go to
// the first occurrence, matching Argmax.
type MaxDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

func NewMaxDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *MaxDimOp {
	return &MaxDimOp{
		input:   input,
		output:  output,
		dim:     normalizeDim(dim, len(input.Shape())),
		keepDim: keepDim,
	}
}

func (op *MaxDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	shape := op.input.Shape()
	winners := backend.Argmax(op.input, op.dim).AsInt32()

	outer, size, inner := 1, shape[op.dim], 1
	for d := 0; d < op.dim; d++ {
		outer *= shape[d]
	}
	for d := op.dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	inputGrad := zerosLike(op.input)
	switch op.input.DType() {
	case tensor.Float32:
		scatterMax(outputGrad.AsFloat32(), inputGrad.AsFloat32(), winners, outer, size, inner)
	case tensor.Float64:
		scatterMax(outputGrad.AsFloat64(), inputGrad.AsFloat64(), winners, outer, size, inner)
	default:
		panic("ops: max backward requires a float dtype")
	}
	return []*tensor.RawTensor{inputGrad}
}

func (op *MaxDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MaxDimOp) Output() *tensor.RawTensor   { return op.output }

// scatterMax writes each slice's output gradient at its winning index.
func scatterMax[T ~float32 | ~float64](outGrad, inGrad []T, winners []int32, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			s := o*inner + i
			k := int(winners[s])
			inGrad[(o*size+k)*inner+i] = outGrad[s]
		}
	}
}

// expandDim reverses a dimension reduction: the gradient is reshaped so
// the reduced dimension reappears at size 1, then multiplied against
// ones of the input's shape to broadcast it back out.
func expandDim(grad, input *tensor.RawTensor, dim int, keepDim bool, backend tensor.Backend) *tensor.RawTensor {
	if !keepDim {
		kept := input.Shape().Clone()
		kept[dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	return backend.Mul(onesLike(input), grad)
}
