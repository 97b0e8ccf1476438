package cpu

import (
	"fmt"
	"math"

	"github.com/primer-ml/primer/internal/tensor"
)

// Exp returns e^x element-wise. Float dtypes only.
func (c *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryFloat("exp", x, math.Exp)
}

// Log returns the natural logarithm element-wise. Float dtypes only.
// Non-positive inputs produce -Inf or NaN, as in math.Log.
func (c *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryFloat("log", x, math.Log)
}

// Sqrt returns the square root element-wise. Float dtypes only.
func (c *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryFloat("sqrt", x, math.Sqrt)
}

// Neg returns -x element-wise.
func (c *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return c.MulScalar(x, -1)
}

func (c *CPUBackend) unaryFloat(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	out := newRaw(x.Shape(), x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		unaryFloatInto(tensor.View[float32](x), tensor.View[float32](out), c.pool, f)
	case tensor.Float64:
		unaryFloatInto(tensor.View[float64](x), tensor.View[float64](out), c.pool, f)
	default:
		panic(fmt.Sprintf("%s: requires a float dtype, got %s", name, x.DType()))
	}
	return out
}
