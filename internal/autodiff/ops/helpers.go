package ops

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// reduceBroadcast sums a gradient down to the shape an operand had before
// broadcasting. When the shapes already match it returns a buffer-sharing
// clone, so in-place accumulation elsewhere cannot corrupt the original.
//
// Broadcasting aligns shapes from the right, so extra leading dimensions
// are summed away first, then any dimension the operand held at size 1.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		return grad.Clone()
	}

	for len(grad.Shape()) > len(target) {
		grad = backend.SumDim(grad, 0, false)
	}

	for d := 0; d < len(target); d++ {
		if target[d] == 1 && grad.Shape()[d] > 1 {
			grad = backend.SumDim(grad, d, true)
		}
	}

	if !grad.Shape().Equal(target) {
		grad = backend.Reshape(grad, target)
	}
	return grad
}

// onesLike allocates a float tensor of ones matching x's shape and dtype.
func onesLike(x *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("ops: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("ops: onesLike requires a float dtype, got %s", x.DType()))
	}
	return out
}

// zerosLike allocates a zeroed tensor matching x's shape and dtype.
func zerosLike(x *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("ops: %v", err))
	}
	return out
}

// scalarValue reads the single element of a scalar-shaped float tensor.
func scalarValue(x *tensor.RawTensor) float64 {
	switch x.DType() {
	case tensor.Float32:
		return float64(x.AsFloat32()[0])
	case tensor.Float64:
		return x.AsFloat64()[0]
	default:
		panic(fmt.Sprintf("ops: scalarValue requires a float dtype, got %s", x.DType()))
	}
}

// normalizeDim resolves negative dimension indices against a rank.
func normalizeDim(dim, ndim int) int {
	d := dim
	if d < 0 {
		d += ndim
	}
	if d < 0 || d >= ndim {
		panic(fmt.Sprintf("ops: dimension %d out of range for rank %d", dim, ndim))
	}
	return d
}
