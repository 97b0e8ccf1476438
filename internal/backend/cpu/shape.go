package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// Reshape returns a tensor with the same elements in a new shape.
// The element count must be preserved. Data is copied; the result owns
// fresh storage.
func (c *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if x.NumElements() != shape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			x.Shape(), x.NumElements(), shape, shape.NumElements()))
	}

	out := newRaw(shape, x.DType(), c.device)
	copy(out.Bytes(), x.Bytes())
	return out
}

// Transpose permutes dimensions. With no axes the order is reversed.
// Axes must be a permutation of [0, ndim).
func (c *CPUBackend) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(x.Shape())

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: %d axes for %dD tensor", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("transpose: axes %v is not a permutation of [0,%d)", axes, ndim))
		}
		seen[ax] = true
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		outShape[i] = x.Shape()[ax]
	}

	out := newRaw(outShape, x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		transposeKernel[float32](x, out, axes)
	case tensor.Float64:
		transposeKernel[float64](x, out, axes)
	case tensor.Int32:
		transposeKernel[int32](x, out, axes)
	case tensor.Int64:
		transposeKernel[int64](x, out, axes)
	case tensor.Uint8:
		transposeKernel[uint8](x, out, axes)
	case tensor.Bool:
		transposeKernel[bool](x, out, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", x.DType()))
	}
	return out
}

func transposeKernel[T tensor.DType](x, out *tensor.RawTensor, axes []int) {
	xv, ov := tensor.View[T](x), tensor.View[T](out)
	inStrides := x.Strides()
	outShape := out.Shape()
	outStrides := outShape.ComputeStrides()

	// For each output element, the index along output dimension d equals
	// the input index along dimension axes[d].
	for i := range ov {
		rem := i
		src := 0
		for d := range outShape {
			k := rem / outStrides[d]
			rem %= outStrides[d]
			src += k * inStrides[axes[d]]
		}
		ov[i] = xv[src]
	}
}
