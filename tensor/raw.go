// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/primer-ml/primer/internal/tensor"
)

// RawTensor is the low-level, dtype-erased tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Type-safe data access via AsFloat32(), AsInt32(), View[T]()
//   - Copy-on-write semantics via Clone() and reference counting
//
// Backends compute on RawTensor; most users should use the high-level
// Tensor[T, B] type instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32() // Type-safe access
//	clone := raw.Clone()    // Shares the buffer via reference counting
type RawTensor = tensor.RawTensor

// View returns the raw tensor's storage as a []T without copying.
//
// Panics if T does not match the tensor's dtype.
func View[T DType](r *RawTensor) []T {
	return tensor.View[T](r)
}
