package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// Greater returns a > b element-wise as a Bool tensor, with broadcasting.
func (c *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.compare("greater", a, b, func(cmp int) bool { return cmp > 0 })
}

// Equal returns a == b element-wise as a Bool tensor, with broadcasting.
func (c *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.compare("equal", a, b, func(cmp int) bool { return cmp == 0 })
}

// compare evaluates pred over the three-way comparison of element pairs.
func (c *CPUBackend) compare(name string, a, b *tensor.RawTensor, pred func(cmp int) bool) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	switch a.DType() {
	case tensor.Float32:
		return compareDispatch[float32](c, name, a, b, pred)
	case tensor.Float64:
		return compareDispatch[float64](c, name, a, b, pred)
	case tensor.Int32:
		return compareDispatch[int32](c, name, a, b, pred)
	case tensor.Int64:
		return compareDispatch[int64](c, name, a, b, pred)
	case tensor.Uint8:
		return compareDispatch[uint8](c, name, a, b, pred)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
}

func compareDispatch[T number](c *CPUBackend, name string, a, b *tensor.RawTensor, pred func(cmp int) bool) *tensor.RawTensor {
	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	out := newRaw(outShape, tensor.Bool, c.device)
	av, bv := tensor.View[T](a), tensor.View[T](b)
	ov := out.AsBool()

	if a.Shape().Equal(b.Shape()) {
		parallel.ForRange(len(ov), c.pool, func(start, end int) {
			for i := start; i < end; i++ {
				ov[i] = pred(threeWay(av[i], bv[i]))
			}
		})
		return out
	}

	outStrides := outShape.ComputeStrides()
	sa := broadcastStrides(a.Shape(), outShape)
	sb := broadcastStrides(b.Shape(), outShape)
	parallel.ForRange(len(ov), c.pool, func(start, end int) {
		for i := start; i < end; i++ {
			ia, ib := broadcastOffsets(i, outStrides, sa, sb)
			ov[i] = pred(threeWay(av[ia], bv[ib]))
		}
	})
	return out
}

func threeWay[T number](x, y T) int {
	switch {
	case x > y:
		return 1
	case x < y:
		return -1
	default:
		return 0
	}
}
