package ops

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// MaxPool2DOp records output = maxpool2d(input, kernelSize, stride).
//
// The winning position inside each window must be captured during the
// forward pass; by backward time a tie-break against recomputed values
// could route the gradient differently. Only those positions receive
// gradient, the rest of each window gets zero.
type MaxPool2DOp struct {
	input      *tensor.RawTensor
	output     *tensor.RawTensor
	maxIndices []int
	kernelSize int
	stride     int
}

func NewMaxPool2DOp(input, output *tensor.RawTensor, kernelSize, stride int) *MaxPool2DOp {
	return &MaxPool2DOp{
		input:      input,
		output:     output,
		maxIndices: poolWinners(input, output, kernelSize, stride),
		kernelSize: kernelSize,
		stride:     stride,
	}
}

func (op *MaxPool2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := backend.MaxPool2DBackward(op.input, outputGrad, op.maxIndices, op.kernelSize, op.stride)
	return []*tensor.RawTensor{grad}
}

func (op *MaxPool2DOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MaxPool2DOp) Output() *tensor.RawTensor   { return op.output }

// poolWinners records the flat input index of each window's maximum.
func poolWinners(input, output *tensor.RawTensor, kernelSize, stride int) []int {
	switch input.DType() {
	case tensor.Float32:
		return poolWinnersOf(input.AsFloat32(), input.Shape(), output.Shape(), kernelSize, stride)
	case tensor.Float64:
		return poolWinnersOf(input.AsFloat64(), input.Shape(), output.Shape(), kernelSize, stride)
	default:
		panic(fmt.Sprintf("ops: maxpool2d requires a float dtype, got %s", input.DType()))
	}
}

func poolWinnersOf[T ~float32 | ~float64](data []T, inShape, outShape tensor.Shape, kernelSize, stride int) []int {
	n, ch, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	outH, outW := outShape[2], outShape[3]

	winners := make([]int, n*ch*outH*outW)
	pos := 0
	for b := 0; b < n; b++ {
		for c := 0; c < ch; c++ {
			base := (b*ch + c) * h * w
			for oh := 0; oh < outH; oh++ {
				for ow := 0; ow < outW; ow++ {
					best := base + oh*stride*w + ow*stride
					bestVal := data[best]
					for kh := 0; kh < kernelSize; kh++ {
						for kw := 0; kw < kernelSize; kw++ {
							idx := base + (oh*stride+kh)*w + (ow*stride + kw)
							if data[idx] > bestVal {
								bestVal = data[idx]
								best = idx
							}
						}
					}
					winners[pos] = best
					pos++
				}
			}
		}
	}
	return winners
}
