package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// number covers the dtypes with arithmetic; bool is excluded.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// floats covers the dtypes element-wise math is defined on.
type floats interface {
	~float32 | ~float64
}

type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

func (op binOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	case opDiv:
		return "div"
	default:
		return "unknown"
	}
}

// binaryDispatch picks the in-place, vectorized, or broadcast path.
func binaryDispatch[T number](c *CPUBackend, op binOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.Shape().Equal(b.Shape()) {
		av, bv := tensor.View[T](a), tensor.View[T](b)
		if a.IsUnique() {
			binaryInto(op, av, bv, av, c.pool)
			return a
		}
		out := newRaw(a.Shape(), a.DType(), c.device)
		binaryInto(op, av, bv, tensor.View[T](out), c.pool)
		return out
	}

	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	out := newRaw(outShape, a.DType(), c.device)
	binaryBroadcastInto[T](op, a, b, out, c.pool)
	return out
}

// binaryInto runs the same-shape kernel. out may alias a for in-place use;
// element i only ever depends on a[i] and b[i], so aliasing is safe.
func binaryInto[T number](op binOp, a, b, out []T, pool parallel.Config) {
	switch op {
	case opAdd:
		parallel.ForRange(len(out), pool, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = a[i] + b[i]
			}
		})
	case opSub:
		parallel.ForRange(len(out), pool, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = a[i] - b[i]
			}
		})
	case opMul:
		parallel.ForRange(len(out), pool, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = a[i] * b[i]
			}
		})
	case opDiv:
		parallel.ForRange(len(out), pool, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = a[i] / b[i]
			}
		})
	}
}

// binaryBroadcastInto walks the output linearly, translating each flat
// index into the operands through broadcast strides (stride 0 on expanded
// dimensions).
func binaryBroadcastInto[T number](op binOp, a, b, out *tensor.RawTensor, pool parallel.Config) {
	av, bv, ov := tensor.View[T](a), tensor.View[T](b), tensor.View[T](out)
	outShape := out.Shape()
	outStrides := outShape.ComputeStrides()
	sa := broadcastStrides(a.Shape(), outShape)
	sb := broadcastStrides(b.Shape(), outShape)

	var combine func(x, y T) T
	switch op {
	case opAdd:
		combine = func(x, y T) T { return x + y }
	case opSub:
		combine = func(x, y T) T { return x - y }
	case opMul:
		combine = func(x, y T) T { return x * y }
	case opDiv:
		combine = func(x, y T) T { return x / y }
	}

	parallel.ForRange(len(ov), pool, func(start, end int) {
		for i := start; i < end; i++ {
			ia, ib := broadcastOffsets(i, outStrides, sa, sb)
			ov[i] = combine(av[ia], bv[ib])
		}
	})
}

// broadcastStrides maps a source shape onto strides relative to the
// (larger) output shape: missing leading dimensions and size-1 dimensions
// get stride 0, so every output index lands on a valid source element.
func broadcastStrides(src, out tensor.Shape) []int {
	srcStrides := src.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(src)

	for i := range out {
		if i < offset || src[i-offset] == 1 {
			strides[i] = 0
			continue
		}
		strides[i] = srcStrides[i-offset]
	}
	return strides
}

// broadcastOffsets decomposes a flat output index and projects it through
// two stride sets at once.
func broadcastOffsets(flat int, outStrides, sa, sb []int) (int, int) {
	ia, ib := 0, 0
	rem := flat
	for d := range outStrides {
		k := rem / outStrides[d]
		rem %= outStrides[d]
		ia += k * sa[d]
		ib += k * sb[d]
	}
	return ia, ib
}

// unaryFloatInto applies f element-wise for a float dtype pair of views.
func unaryFloatInto[T floats](x, out []T, pool parallel.Config, f func(float64) float64) {
	parallel.ForRange(len(out), pool, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = T(f(float64(x[i])))
		}
	})
}
