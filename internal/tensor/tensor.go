// Package tensor implements the dense tensor core: shapes, dtypes, the
// reference-counted RawTensor storage, the Backend contract, and the
// generic Tensor[T, B] wrapper the rest of the framework works with.
package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a dense multi-dimensional array with compile-time element
// type T, executing its operations on backend B.
//
// Tensor is a thin typed view over a RawTensor. Operations delegate to
// the backend, so the same model code runs unchanged on any Backend
// implementation (plain CPU, autodiff-wrapped CPU, future accelerators).
//
// Example:
//
//	be := cpu.New()
//	x := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, be)
//	y := x.MulScalar(10).Add(x)
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
	grad    *Tensor[T, B]
}

// New wraps an existing RawTensor. Panics if the raw dtype does not match T.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	if want := DataTypeOf[T](); raw.DType() != want {
		panic(fmt.Sprintf("tensor: raw dtype %s does not match element type %s", raw.DType(), want))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's runtime element type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// Device returns the device holding the tensor's data.
func (t *Tensor[T, B]) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the backend executing this tensor's operations.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Grad returns the gradient tensor, or nil when none has been set.
func (t *Tensor[T, B]) Grad() *Tensor[T, B] {
	return t.grad
}

// SetGrad attaches a gradient tensor, typically after a backward pass.
func (t *Tensor[T, B]) SetGrad(grad *Tensor[T, B]) {
	t.grad = grad
}

// Detach returns a view of the same storage with no gradient attached.
func (t *Tensor[T, B]) Detach() *Tensor[T, B] {
	return New[T](t.raw.Clone(), t.backend)
}

// Clone returns a deep copy with freshly allocated storage.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return New[T](t.raw.CloneDetached(), t.backend)
}

// Data returns the tensor's elements as a typed slice view.
// The slice aliases tensor storage; writes are visible to every view.
func (t *Tensor[T, B]) Data() []T {
	return View[T](t.raw)
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("item: tensor has %d elements, want exactly 1", t.NumElements()))
	}
	return View[T](t.raw)[0]
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[T, B]) At(indices ...int) T {
	return View[T](t.raw)[t.flatIndex(indices)]
}

// Set writes the element at the given multi-dimensional index.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	View[T](t.raw)[t.flatIndex(indices)] = value
}

func (t *Tensor[T, B]) flatIndex(indices []int) int {
	shape := t.raw.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("index has %d dimensions, tensor has %d", len(indices), len(shape)))
	}
	strides := t.raw.Strides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", idx, i, shape[i]))
		}
		flat += idx * strides[i]
	}
	return flat
}

// String renders a short, single-line description with leading elements.
func (t *Tensor[T, B]) String() string {
	const maxShown = 8

	data := View[T](t.raw)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor(shape=%v, dtype=%s, data=[", t.Shape(), t.DType())
	for i, v := range data {
		if i == maxShown {
			sb.WriteString(" ...")
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteString("])")
	return sb.String()
}
