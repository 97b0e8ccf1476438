package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Zeros creates a zero-filled tensor with the given shape.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	raw := mustNewRaw[T](shape, backend)
	return New[T](raw, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return Full[T](shape, numeric[T](1), backend)
}

// Full creates a tensor with every element set to value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	raw := mustNewRaw[T](shape, backend)
	data := View[T](raw)
	for i := range data {
		data[i] = value
	}
	return New[T](raw, backend)
}

// Randn creates a tensor of standard normal samples (mean 0, stddev 1)
// using the Box-Muller transform. Only floating-point dtypes are supported.
//
// Example:
//
//	w := tensor.Randn[float32](tensor.Shape{784, 256}, backend)
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	raw := mustNewRaw[T](shape, backend)
	data := View[T](raw)

	switch d := any(data).(type) {
	case []float32:
		for i := range d {
			d[i] = float32(boxMuller())
		}
	case []float64:
		for i := range d {
			d[i] = boxMuller()
		}
	default:
		panic(fmt.Sprintf("randn: requires a float dtype, got %s", raw.DType()))
	}

	return New[T](raw, backend)
}

// boxMuller draws one standard normal sample from two uniforms.
func boxMuller() float64 {
	u1 := rand.Float64()
	for u1 == 0 {
		u1 = rand.Float64()
	}
	u2 := rand.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Rand creates a tensor of uniform samples in [0, 1).
// Only floating-point dtypes are supported.
func Rand[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	raw := mustNewRaw[T](shape, backend)
	data := View[T](raw)

	switch d := any(data).(type) {
	case []float32:
		for i := range d {
			d[i] = rand.Float32()
		}
	case []float64:
		for i := range d {
			d[i] = rand.Float64()
		}
	default:
		panic(fmt.Sprintf("rand: requires a float dtype, got %s", raw.DType()))
	}

	return New[T](raw, backend)
}

// Arange creates a 1D tensor [start, start+step, ...) up to but excluding stop.
//
// Example:
//
//	tensor.Arange[int32](0, 10, 2, backend) // [0 2 4 6 8]
func Arange[T DType, B Backend](start, stop, step float64, backend B) *Tensor[T, B] {
	if step == 0 {
		panic("arange: step must be non-zero")
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		panic(fmt.Sprintf("arange: empty range [%g, %g) with step %g", start, stop, step))
	}

	raw := mustNewRaw[T](Shape{n}, backend)
	data := View[T](raw)
	for i := range data {
		data[i] = numericFromFloat[T](start + float64(i)*step)
	}
	return New[T](raw, backend)
}

// Eye creates an n x n identity matrix.
func Eye[T DType, B Backend](n int, backend B) *Tensor[T, B] {
	raw := mustNewRaw[T](Shape{n, n}, backend)
	data := View[T](raw)
	one := numeric[T](1)
	for i := 0; i < n; i++ {
		data[i*n+i] = one
	}
	return New[T](raw, backend)
}

// FromSlice creates a tensor from existing data, copying it into fresh
// storage. The slice length must match the shape's element count.
//
// Example:
//
//	x := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) *Tensor[T, B] {
	if len(data) != shape.NumElements() {
		panic(fmt.Sprintf("fromslice: %d elements do not fit shape %v (%d elements)",
			len(data), shape, shape.NumElements()))
	}
	raw := mustNewRaw[T](shape, backend)
	copy(View[T](raw), data)
	return New[T](raw, backend)
}

func mustNewRaw[T DType](shape Shape, backend Backend) *RawTensor {
	raw, err := NewRaw(shape, DataTypeOf[T](), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return raw
}

// numeric converts a small integer constant to the element type T.
// Bool maps 0 to false and anything else to true.
func numeric[T DType](v int) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(v)).(T)
	case float64:
		return any(float64(v)).(T)
	case int32:
		return any(int32(v)).(T)
	case int64:
		return any(int64(v)).(T)
	case uint8:
		return any(uint8(v)).(T)
	case bool:
		return any(v != 0).(T)
	default:
		panic(fmt.Sprintf("unsupported element type %T", zero))
	}
}

func numericFromFloat[T DType](v float64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(v)).(T)
	case float64:
		return any(v).(T)
	case int32:
		return any(int32(v)).(T)
	case int64:
		return any(int64(v)).(T)
	case uint8:
		return any(uint8(v)).(T)
	case bool:
		return any(v != 0).(T)
	default:
		panic(fmt.Sprintf("unsupported element type %T", zero))
	}
}
