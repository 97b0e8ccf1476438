package tensor

import "fmt"

// Shape describes tensor dimensions, outermost dimension first.
// A shape of length zero denotes a scalar.
type Shape []int

// NumElements returns the total number of elements (1 for a scalar shape).
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate returns an error if any dimension is non-positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("dimension %d has invalid size %d", i, dim)
		}
	}
	return nil
}

// Equal reports whether both shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}

// String formats the shape as "[d0 d1 ...]".
func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// ComputeStrides returns row-major (C order) strides for the shape:
// the innermost dimension has stride 1.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// BroadcastShapes computes the result shape of broadcasting a against b
// under NumPy rules: shapes align from the right, and each dimension pair
// must be equal or contain a 1.
//
// Example:
//
//	BroadcastShapes(Shape{8, 1, 3}, Shape{4, 3}) // Shape{8, 4, 3}
func BroadcastShapes(a, b Shape) (Shape, error) {
	ndim := max(len(a), len(b))
	out := make(Shape, ndim)

	for i := 1; i <= ndim; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}

		switch {
		case da == db:
			out[ndim-i] = da
		case da == 1:
			out[ndim-i] = db
		case db == 1:
			out[ndim-i] = da
		default:
			return nil, fmt.Errorf("cannot broadcast shapes %v and %v", a, b)
		}
	}

	return out, nil
}
