package cpu

import (
	"fmt"
	"math"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// ReLU returns max(0, x) element-wise.
func (c *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	out := newRaw(x.Shape(), x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		reluInto(tensor.View[float32](x), tensor.View[float32](out), c.pool)
	case tensor.Float64:
		reluInto(tensor.View[float64](x), tensor.View[float64](out), c.pool)
	case tensor.Int32:
		reluInto(tensor.View[int32](x), tensor.View[int32](out), c.pool)
	case tensor.Int64:
		reluInto(tensor.View[int64](x), tensor.View[int64](out), c.pool)
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}
	return out
}

func reluInto[T number](x, out []T, pool parallel.Config) {
	parallel.ForRange(len(out), pool, func(start, end int) {
		for i := start; i < end; i++ {
			if x[i] > 0 {
				out[i] = x[i]
			} else {
				out[i] = 0
			}
		}
	})
}

// Sigmoid returns 1 / (1 + e^-x) element-wise. Float dtypes only.
func (c *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryFloat("sigmoid", x, func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// Tanh returns the hyperbolic tangent element-wise. Float dtypes only.
func (c *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryFloat("tanh", x, math.Tanh)
}

// Softmax normalizes along dim so each slice sums to one, shifting by the
// slice maximum before exponentiating so large logits cannot overflow.
func (c *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	dim = normalizeDim(dim, len(x.Shape()), "softmax")
	out := newRaw(x.Shape(), x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		softmaxInto[float32](x, out, dim, c.pool)
	case tensor.Float64:
		softmaxInto[float64](x, out, dim, c.pool)
	default:
		panic(fmt.Sprintf("softmax: requires a float dtype, got %s", x.DType()))
	}
	return out
}

func softmaxInto[T floats](x, out *tensor.RawTensor, dim int, pool parallel.Config) {
	xv, ov := tensor.View[T](x), tensor.View[T](out)
	outer, size, inner := sliceDims(x.Shape(), dim)

	parallel.For(outer*inner, pool, func(k int) {
		o, in := k/inner, k%inner
		base := o*size*inner + in

		maxVal := xv[base]
		for j := 1; j < size; j++ {
			if v := xv[base+j*inner]; v > maxVal {
				maxVal = v
			}
		}

		var sum float64
		for j := 0; j < size; j++ {
			e := math.Exp(float64(xv[base+j*inner] - maxVal))
			ov[base+j*inner] = T(e)
			sum += e
		}

		inv := T(1 / sum)
		for j := 0; j < size; j++ {
			ov[base+j*inner] *= inv
		}
	})
}

// sliceDims decomposes a shape around dim into (outer, size, inner) so
// that flat index = (o*size + j)*inner + i walks slices along dim.
func sliceDims(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, shape[dim], inner
}

func normalizeDim(dim, ndim int, op string) int {
	d := dim
	if d < 0 {
		d += ndim
	}
	if d < 0 || d >= ndim {
		panic(fmt.Sprintf("%s: dimension %d out of range for %dD tensor", op, dim, ndim))
	}
	return d
}
