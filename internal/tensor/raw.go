package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// buffer is a reference-counted byte store shared between RawTensors.
// Reference counting enables cheap clones (copy-on-write) and lets
// backends safely reuse storage in place when refCount == 1.
type buffer struct {
	data     []byte
	refCount atomic.Int32
}

func newBuffer(size int) *buffer {
	b := &buffer{data: make([]byte, size)}
	b.refCount.Store(1)
	return b
}

func (b *buffer) addRef() {
	b.refCount.Add(1)
}

func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.data = nil
	}
}

func (b *buffer) isUnique() bool {
	return b.refCount.Load() == 1
}

// RawTensor is the untyped, runtime representation of a tensor: a shaped,
// dtype-tagged view over a reference-counted buffer. Backends operate on
// RawTensors; the generic Tensor[T, B] wraps one for type safety.
type RawTensor struct {
	buf    *buffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw allocates a zero-initialized RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		buf:    newBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's row-major memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's element type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the device holding the tensor's data.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total storage size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Bytes returns the underlying byte storage.
// Mutating it mutates every view sharing the buffer.
func (r *RawTensor) Bytes() []byte {
	return r.buf.data
}

// View reinterprets the tensor's storage as a []T without copying.
// Panics if T does not match the tensor's runtime dtype.
//
// This is the primitive all typed accessors and CPU kernels build on.
func View[T DType](r *RawTensor) []T {
	if want := DataTypeOf[T](); r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	if len(r.buf.data) == 0 {
		return nil
	}
	//nolint:gosec // zero-copy reinterpretation; length bounded by NumElements
	return unsafe.Slice((*T)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

// AsFloat32 interprets the data as []float32. Panics on dtype mismatch.
func (r *RawTensor) AsFloat32() []float32 { return View[float32](r) }

// AsFloat64 interprets the data as []float64. Panics on dtype mismatch.
func (r *RawTensor) AsFloat64() []float64 { return View[float64](r) }

// AsInt32 interprets the data as []int32. Panics on dtype mismatch.
func (r *RawTensor) AsInt32() []int32 { return View[int32](r) }

// AsInt64 interprets the data as []int64. Panics on dtype mismatch.
func (r *RawTensor) AsInt64() []int64 { return View[int64](r) }

// AsUint8 interprets the data as []uint8. Panics on dtype mismatch.
func (r *RawTensor) AsUint8() []uint8 { return View[uint8](r) }

// AsBool interprets the data as []bool. Panics on dtype mismatch.
func (r *RawTensor) AsBool() []bool { return View[bool](r) }

// Clone returns a new RawTensor sharing this tensor's buffer, incrementing
// its reference count. The storage is only duplicated when a backend needs
// to write while the buffer is shared (copy-on-write).
//
// Example:
//
//	a := tensor.Ones[float32](tensor.Shape{1024, 1024}, backend)
//	b := a.Raw().Clone() // shares storage, no copy
func (r *RawTensor) Clone() *RawTensor {
	r.buf.addRef()
	return &RawTensor{
		buf:    r.buf,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// CloneDetached returns a deep copy with freshly allocated storage.
func (r *RawTensor) CloneDetached() *RawTensor {
	out, err := NewRaw(r.shape, r.dtype, r.device)
	if err != nil {
		panic(fmt.Sprintf("clone: %v", err))
	}
	copy(out.buf.data, r.buf.data)
	return out
}

// Release decrements the buffer's reference count, freeing the storage
// when it reaches zero.
func (r *RawTensor) Release() {
	r.buf.release()
}

// IsUnique reports whether this tensor holds the only reference to its
// buffer. Backends may overwrite storage in place only when true.
func (r *RawTensor) IsUnique() bool {
	return r.buf.isUnique()
}

// ForceNonUnique pins the buffer as shared so no backend writes it in
// place, and returns a function restoring the previous state (use defer).
//
// The autodiff backend pins every recorded input this way: an in-place
// forward op would overwrite values the backward pass still needs.
//
// Example:
//
//	defer x.ForceNonUnique()()
//	y := backend.Mul(x, x) // x's storage stays intact
func (r *RawTensor) ForceNonUnique() func() {
	r.buf.addRef()
	return func() {
		r.buf.release()
	}
}
