package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// Sum reduces all elements to a single-element tensor of the same dtype.
func (c *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out := newRaw(tensor.Shape{1}, x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		sumAllInto[float32](x, out)
	case tensor.Float64:
		sumAllInto[float64](x, out)
	case tensor.Int32:
		sumAllInto[int32](x, out)
	case tensor.Int64:
		sumAllInto[int64](x, out)
	case tensor.Uint8:
		sumAllInto[uint8](x, out)
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return out
}

func sumAllInto[T number](x, out *tensor.RawTensor) {
	var total T
	for _, v := range tensor.View[T](x) {
		total += v
	}
	tensor.View[T](out)[0] = total
}

// SumDim sums along dim. With keepDim the reduced dimension stays with
// size 1; otherwise it is removed.
func (c *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	dim = normalizeDim(dim, len(x.Shape()), "sumdim")
	out := newRaw(reducedShape(x.Shape(), dim, keepDim), x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		sumDimInto[float32](x, out, dim)
	case tensor.Float64:
		sumDimInto[float64](x, out, dim)
	case tensor.Int32:
		sumDimInto[int32](x, out, dim)
	case tensor.Int64:
		sumDimInto[int64](x, out, dim)
	case tensor.Uint8:
		sumDimInto[uint8](x, out, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}
	return out
}

func sumDimInto[T number](x, out *tensor.RawTensor, dim int) {
	xv, ov := tensor.View[T](x), tensor.View[T](out)
	outer, size, inner := sliceDims(x.Shape(), dim)

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in
			var total T
			for j := 0; j < size; j++ {
				total += xv[base+j*inner]
			}
			ov[o*inner+in] = total
		}
	}
}

// MeanDim averages along dim. Float dtypes only.
func (c *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("meandim: requires a float dtype, got %s", x.DType()))
	}
	d := normalizeDim(dim, len(x.Shape()), "meandim")
	return c.MulScalar(c.SumDim(x, d, keepDim), 1/float64(x.Shape()[d]))
}

// MaxDim takes the maximum along dim.
func (c *CPUBackend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	dim = normalizeDim(dim, len(x.Shape()), "maxdim")
	out := newRaw(reducedShape(x.Shape(), dim, keepDim), x.DType(), c.device)

	switch x.DType() {
	case tensor.Float32:
		maxDimInto[float32](x, out, dim)
	case tensor.Float64:
		maxDimInto[float64](x, out, dim)
	case tensor.Int32:
		maxDimInto[int32](x, out, dim)
	case tensor.Int64:
		maxDimInto[int64](x, out, dim)
	case tensor.Uint8:
		maxDimInto[uint8](x, out, dim)
	default:
		panic(fmt.Sprintf("maxdim: unsupported dtype %s", x.DType()))
	}
	return out
}

func maxDimInto[T number](x, out *tensor.RawTensor, dim int) {
	xv, ov := tensor.View[T](x), tensor.View[T](out)
	outer, size, inner := sliceDims(x.Shape(), dim)

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in
			best := xv[base]
			for j := 1; j < size; j++ {
				if v := xv[base+j*inner]; v > best {
					best = v
				}
			}
			ov[o*inner+in] = best
		}
	}
}

// Argmax returns int32 indices of the maxima along dim. The reduced
// dimension is removed from the result shape.
func (c *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	dim = normalizeDim(dim, len(x.Shape()), "argmax")
	out := newRaw(reducedShape(x.Shape(), dim, false), tensor.Int32, c.device)

	switch x.DType() {
	case tensor.Float32:
		argmaxInto[float32](x, out, dim)
	case tensor.Float64:
		argmaxInto[float64](x, out, dim)
	case tensor.Int32:
		argmaxInto[int32](x, out, dim)
	case tensor.Int64:
		argmaxInto[int64](x, out, dim)
	case tensor.Uint8:
		argmaxInto[uint8](x, out, dim)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}
	return out
}

func argmaxInto[T number](x, out *tensor.RawTensor, dim int) {
	xv := tensor.View[T](x)
	ov := out.AsInt32()
	outer, size, inner := sliceDims(x.Shape(), dim)

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in
			best, bestIdx := xv[base], int32(0)
			for j := 1; j < size; j++ {
				if v := xv[base+j*inner]; v > best {
					best, bestIdx = v, int32(j)
				}
			}
			ov[o*inner+in] = bestIdx
		}
	}
}

// reducedShape drops dim from shape, or keeps it with size 1.
// Reducing a 1D tensor without keepDim yields Shape{1}, not a 0D scalar.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	if len(shape) == 1 {
		return tensor.Shape{1}
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for i, d := range shape {
		if i != dim {
			out = append(out, d)
		}
	}
	return out
}
