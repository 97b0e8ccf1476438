package cpu

import (
	"fmt"
	"math"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// AddScalar returns x + s. For integer dtypes s is truncated.
func (c *CPUBackend) AddScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return c.scalarOp("addscalar", x, s, func(v, s float64) float64 { return v + s })
}

// MulScalar returns x * s. For integer dtypes s is truncated.
func (c *CPUBackend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return c.scalarOp("mulscalar", x, s, func(v, s float64) float64 { return v * s })
}

// PowScalar returns x^p element-wise. Float dtypes only.
func (c *CPUBackend) PowScalar(x *tensor.RawTensor, p float64) *tensor.RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("powscalar: requires a float dtype, got %s", x.DType()))
	}
	return c.scalarOp("powscalar", x, p, math.Pow)
}

func (c *CPUBackend) scalarOp(name string, x *tensor.RawTensor, s float64, f func(v, s float64) float64) *tensor.RawTensor {
	out := newRaw(x.Shape(), x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		scalarInto(tensor.View[float32](x), tensor.View[float32](out), s, c.pool, f)
	case tensor.Float64:
		scalarInto(tensor.View[float64](x), tensor.View[float64](out), s, c.pool, f)
	case tensor.Int32:
		scalarInto(tensor.View[int32](x), tensor.View[int32](out), s, c.pool, f)
	case tensor.Int64:
		scalarInto(tensor.View[int64](x), tensor.View[int64](out), s, c.pool, f)
	case tensor.Uint8:
		scalarInto(tensor.View[uint8](x), tensor.View[uint8](out), s, c.pool, f)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return out
}

func scalarInto[T number](x, out []T, s float64, pool parallel.Config, f func(v, s float64) float64) {
	parallel.ForRange(len(out), pool, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = T(f(float64(x[i]), s))
		}
	})
}
