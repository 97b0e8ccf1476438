package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// Cast converts x to the given dtype, always into fresh storage. Values
// pass through float64: floats truncate toward zero when cast to
// integers, bool maps to 0/1 and back by != 0.
func (c *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.CloneDetached()
	}

	out := newRaw(x.Shape(), dtype, c.device)
	read := readerFor(x)
	write := writerFor(out)
	for i := 0; i < x.NumElements(); i++ {
		write(i, read(i))
	}
	return out
}

func readerFor(x *tensor.RawTensor) func(i int) float64 {
	switch x.DType() {
	case tensor.Float32:
		v := x.AsFloat32()
		return func(i int) float64 { return float64(v[i]) }
	case tensor.Float64:
		v := x.AsFloat64()
		return func(i int) float64 { return v[i] }
	case tensor.Int32:
		v := x.AsInt32()
		return func(i int) float64 { return float64(v[i]) }
	case tensor.Int64:
		v := x.AsInt64()
		return func(i int) float64 { return float64(v[i]) }
	case tensor.Uint8:
		v := x.AsUint8()
		return func(i int) float64 { return float64(v[i]) }
	case tensor.Bool:
		v := x.AsBool()
		return func(i int) float64 {
			if v[i] {
				return 1
			}
			return 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
}

func writerFor(out *tensor.RawTensor) func(i int, v float64) {
	switch out.DType() {
	case tensor.Float32:
		o := out.AsFloat32()
		return func(i int, v float64) { o[i] = float32(v) }
	case tensor.Float64:
		o := out.AsFloat64()
		return func(i int, v float64) { o[i] = v }
	case tensor.Int32:
		o := out.AsInt32()
		return func(i int, v float64) { o[i] = int32(v) }
	case tensor.Int64:
		o := out.AsInt64()
		return func(i int, v float64) { o[i] = int64(v) }
	case tensor.Uint8:
		o := out.AsUint8()
		return func(i int, v float64) { o[i] = uint8(v) }
	case tensor.Bool:
		o := out.AsBool()
		return func(i int, v float64) { o[i] = v != 0 }
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", out.DType()))
	}
}
