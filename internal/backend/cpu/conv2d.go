package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// Conv2D convolves an NCHW input with an [outC, inC, kH, kW] kernel.
//
// The kernel is lowered to a matrix product: each batch element's
// receptive fields are unrolled into columns (im2col) and multiplied by
// the flattened kernel. Batch elements are processed in parallel.
func (c *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := newConvGeometry(input, kernel, stride, padding)
	out := newRaw(tensor.Shape{g.n, g.outC, g.outH, g.outW}, input.DType(), c.device)

	switch input.DType() {
	case tensor.Float32:
		conv2dInto[float32](input, kernel, out, g, c.pool)
	case tensor.Float64:
		conv2dInto[float64](input, kernel, out, g, c.pool)
	default:
		panic(fmt.Sprintf("conv2d: requires a float dtype, got %s", input.DType()))
	}
	return out
}

// convGeometry bundles the shape arithmetic shared by the forward and
// backward kernels.
type convGeometry struct {
	n, inC, inH, inW int
	outC, kH, kW     int
	outH, outW       int
	stride, padding  int
}

func newConvGeometry(input, kernel *tensor.RawTensor, stride, padding int) convGeometry {
	is, ks := input.Shape(), kernel.Shape()
	if len(is) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N, C, H, W], got %v", is))
	}
	if len(ks) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [outC, inC, kH, kW], got %v", ks))
	}
	if is[1] != ks[1] {
		panic(fmt.Sprintf("conv2d: input channels %d do not match kernel channels %d", is[1], ks[1]))
	}
	if stride < 1 {
		panic(fmt.Sprintf("conv2d: stride must be >= 1, got %d", stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("conv2d: padding must be >= 0, got %d", padding))
	}

	g := convGeometry{
		n: is[0], inC: is[1], inH: is[2], inW: is[3],
		outC: ks[0], kH: ks[2], kW: ks[3],
		stride: stride, padding: padding,
	}
	g.outH = (g.inH+2*padding-g.kH)/stride + 1
	g.outW = (g.inW+2*padding-g.kW)/stride + 1
	if g.outH <= 0 || g.outW <= 0 {
		panic(fmt.Sprintf("conv2d: kernel %dx%d does not fit input %dx%d with stride %d padding %d",
			g.kH, g.kW, g.inH, g.inW, stride, padding))
	}
	return g
}

func conv2dInto[T floats](input, kernel, out *tensor.RawTensor, g convGeometry, pool parallel.Config) {
	iv, kv, ov := tensor.View[T](input), tensor.View[T](kernel), tensor.View[T](out)
	cols := g.inC * g.kH * g.kW
	positions := g.outH * g.outW

	batchPool := pool
	batchPool.MinChunkSize = 1
	parallel.For(g.n, batchPool, func(n int) {
		// Unroll this batch element's receptive fields: col is
		// [inC*kH*kW, outH*outW] in row-major order.
		col := make([]T, cols*positions)
		for ci := 0; ci < g.inC; ci++ {
			for kh := 0; kh < g.kH; kh++ {
				for kw := 0; kw < g.kW; kw++ {
					row := (ci*g.kH+kh)*g.kW + kw
					for ho := 0; ho < g.outH; ho++ {
						h := ho*g.stride - g.padding + kh
						if h < 0 || h >= g.inH {
							continue // padding region stays zero
						}
						for wo := 0; wo < g.outW; wo++ {
							w := wo*g.stride - g.padding + kw
							if w < 0 || w >= g.inW {
								continue
							}
							col[row*positions+ho*g.outW+wo] =
								iv[((n*g.inC+ci)*g.inH+h)*g.inW+w]
						}
					}
				}
			}
		}

		// out[n] = kernel [outC, cols] x col [cols, positions].
		outBase := n * g.outC * positions
		for co := 0; co < g.outC; co++ {
			outRow := ov[outBase+co*positions : outBase+(co+1)*positions]
			kRow := kv[co*cols : (co+1)*cols]
			for l, kval := range kRow {
				colRow := col[l*positions : (l+1)*positions]
				for j, cval := range colRow {
					outRow[j] += kval * cval
				}
			}
		}
	})
}

// Conv2DInputBackward computes the gradient of Conv2D with respect to its
// input by scattering each output gradient back through the kernel.
func (c *CPUBackend) Conv2DInputBackward(input, kernel, outputGrad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := newConvGeometry(input, kernel, stride, padding)
	grad := newRaw(input.Shape(), input.DType(), c.device)

	switch input.DType() {
	case tensor.Float32:
		conv2dInputBackwardInto[float32](kernel, outputGrad, grad, g, c.pool)
	case tensor.Float64:
		conv2dInputBackwardInto[float64](kernel, outputGrad, grad, g, c.pool)
	default:
		panic(fmt.Sprintf("conv2d backward: requires a float dtype, got %s", input.DType()))
	}
	return grad
}

func conv2dInputBackwardInto[T floats](kernel, outputGrad, inputGrad *tensor.RawTensor, g convGeometry, pool parallel.Config) {
	kv, gv, iv := tensor.View[T](kernel), tensor.View[T](outputGrad), tensor.View[T](inputGrad)

	batchPool := pool
	batchPool.MinChunkSize = 1
	parallel.For(g.n, batchPool, func(n int) {
		for co := 0; co < g.outC; co++ {
			for ho := 0; ho < g.outH; ho++ {
				for wo := 0; wo < g.outW; wo++ {
					gval := gv[((n*g.outC+co)*g.outH+ho)*g.outW+wo]
					if gval == 0 {
						continue
					}
					for ci := 0; ci < g.inC; ci++ {
						for kh := 0; kh < g.kH; kh++ {
							h := ho*g.stride - g.padding + kh
							if h < 0 || h >= g.inH {
								continue
							}
							for kw := 0; kw < g.kW; kw++ {
								w := wo*g.stride - g.padding + kw
								if w < 0 || w >= g.inW {
									continue
								}
								iv[((n*g.inC+ci)*g.inH+h)*g.inW+w] +=
									gval * kv[((co*g.inC+ci)*g.kH+kh)*g.kW+kw]
							}
						}
					}
				}
			}
		}
	})
}

// Conv2DKernelBackward computes the gradient of Conv2D with respect to
// its kernel: the correlation of the input with the output gradient.
func (c *CPUBackend) Conv2DKernelBackward(input, kernel, outputGrad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := newConvGeometry(input, kernel, stride, padding)
	grad := newRaw(kernel.Shape(), kernel.DType(), c.device)

	switch input.DType() {
	case tensor.Float32:
		conv2dKernelBackwardInto[float32](input, outputGrad, grad, g, c.pool)
	case tensor.Float64:
		conv2dKernelBackwardInto[float64](input, outputGrad, grad, g, c.pool)
	default:
		panic(fmt.Sprintf("conv2d backward: requires a float dtype, got %s", input.DType()))
	}
	return grad
}

func conv2dKernelBackwardInto[T floats](input, outputGrad, kernelGrad *tensor.RawTensor, g convGeometry, pool parallel.Config) {
	iv, gv, kv := tensor.View[T](input), tensor.View[T](outputGrad), tensor.View[T](kernelGrad)

	// Each worker owns one output channel's kernel slice, so no two
	// goroutines write the same accumulator.
	coPool := pool
	coPool.MinChunkSize = 1
	parallel.For(g.outC, coPool, func(co int) {
		for n := 0; n < g.n; n++ {
			for ho := 0; ho < g.outH; ho++ {
				for wo := 0; wo < g.outW; wo++ {
					gval := gv[((n*g.outC+co)*g.outH+ho)*g.outW+wo]
					if gval == 0 {
						continue
					}
					for ci := 0; ci < g.inC; ci++ {
						for kh := 0; kh < g.kH; kh++ {
							h := ho*g.stride - g.padding + kh
							if h < 0 || h >= g.inH {
								continue
							}
							for kw := 0; kw < g.kW; kw++ {
								w := wo*g.stride - g.padding + kw
								if w < 0 || w >= g.inW {
									continue
								}
								kv[((co*g.inC+ci)*g.kH+kh)*g.kW+kw] +=
									gval * iv[((n*g.inC+ci)*g.inH+h)*g.inW+w]
							}
						}
					}
				}
			}
		}
	})
}
