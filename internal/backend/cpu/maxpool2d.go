package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// MaxPool2D takes the maximum over kernelSize x kernelSize windows of an
// NCHW input, moving by stride. Windows never cross the input border.
func (c *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	n, ch, _, _, outH, outW := poolGeometry(input, kernelSize, stride)
	out := newRaw(tensor.Shape{n, ch, outH, outW}, input.DType(), c.device)

	switch input.DType() {
	case tensor.Float32:
		maxPoolInto[float32](input, out, kernelSize, stride, c.pool)
	case tensor.Float64:
		maxPoolInto[float64](input, out, kernelSize, stride, c.pool)
	default:
		panic(fmt.Sprintf("maxpool2d: requires a float dtype, got %s", input.DType()))
	}
	return out
}

func poolGeometry(input *tensor.RawTensor, kernelSize, stride int) (n, ch, h, w, outH, outW int) {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("maxpool2d: input must be 4D [N, C, H, W], got %v", shape))
	}
	if kernelSize < 1 || stride < 1 {
		panic(fmt.Sprintf("maxpool2d: kernel size %d and stride %d must be >= 1", kernelSize, stride))
	}

	n, ch, h, w = shape[0], shape[1], shape[2], shape[3]
	outH = (h-kernelSize)/stride + 1
	outW = (w-kernelSize)/stride + 1
	if outH <= 0 || outW <= 0 {
		panic(fmt.Sprintf("maxpool2d: window %d does not fit input %dx%d", kernelSize, h, w))
	}
	return n, ch, h, w, outH, outW
}

func maxPoolInto[T floats](input, out *tensor.RawTensor, kernelSize, stride int, pool parallel.Config) {
	iv, ov := tensor.View[T](input), tensor.View[T](out)
	shape := input.Shape()
	ch, h, w := shape[1], shape[2], shape[3]
	outH := out.Shape()[2]
	outW := out.Shape()[3]

	chPool := pool
	chPool.MinChunkSize = 1
	parallel.ForBatch(shape[0], ch, chPool, func(n, c int) {
		inBase := (n*ch + c) * h * w
		outBase := (n*ch + c) * outH * outW
		for ho := 0; ho < outH; ho++ {
			for wo := 0; wo < outW; wo++ {
				maxVal := iv[inBase+(ho*stride)*w+wo*stride]
				for kh := 0; kh < kernelSize; kh++ {
					for kw := 0; kw < kernelSize; kw++ {
						if v := iv[inBase+(ho*stride+kh)*w+wo*stride+kw]; v > maxVal {
							maxVal = v
						}
					}
				}
				ov[outBase+ho*outW+wo] = maxVal
			}
		}
	})
}

// MaxPool2DBackward routes each output gradient to the input position
// that held the window maximum. maxIndices holds, per flat output index,
// the flat input index chosen during the forward pass.
func (c *CPUBackend) MaxPool2DBackward(input, outputGrad *tensor.RawTensor, maxIndices []int, kernelSize, stride int) *tensor.RawTensor {
	if len(maxIndices) != outputGrad.NumElements() {
		panic(fmt.Sprintf("maxpool2d backward: %d indices for %d output elements",
			len(maxIndices), outputGrad.NumElements()))
	}

	grad := newRaw(input.Shape(), input.DType(), c.device)

	switch input.DType() {
	case tensor.Float32:
		routeGrad(tensor.View[float32](outputGrad), tensor.View[float32](grad), maxIndices)
	case tensor.Float64:
		routeGrad(tensor.View[float64](outputGrad), tensor.View[float64](grad), maxIndices)
	default:
		panic(fmt.Sprintf("maxpool2d backward: requires a float dtype, got %s", input.DType()))
	}
	return grad
}

func routeGrad[T floats](outputGrad, inputGrad []T, maxIndices []int) {
	for i, src := range maxIndices {
		inputGrad[src] += outputGrad[i]
	}
}
