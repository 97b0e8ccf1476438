// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the Primer ML framework.
//
// # Overview
//
// The package defines core interfaces and types for type-safe tensor operations:
//   - Tensor[T, B]: High-level generic tensor with type safety
//   - RawTensor: Low-level dtype-erased tensor for advanced use cases
//   - Backend: Interface for device-specific compute implementations
//   - Shape, DataType, Device: Core type definitions
//
// # Basic Usage
//
//	import (
//	    "github.com/primer-ml/primer/backend/cpu"
//	    "github.com/primer-ml/primer/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y) // Element-wise addition
//
//	    fmt.Println(z.Data()) // [1 1 1 1 1 1]
//	}
//
// # Creation Functions
//
//	tensor.Zeros[float32](shape, backend)          // All zeros
//	tensor.Ones[float32](shape, backend)           // All ones
//	tensor.Full[float32](shape, 3.14, backend)     // Constant fill
//	tensor.Randn[float32](shape, backend)          // N(0, 1) samples
//	tensor.Rand[float32](shape, backend)           // U[0, 1) samples
//	tensor.Arange[float32](0, 10, 1, backend)      // Evenly spaced values
//	tensor.Eye[float32](3, backend)                // Identity matrix
//	tensor.FromSlice(data, shape, backend)         // Copy from a Go slice
//
// # Operations
//
// Tensors carry their backend, so operations are methods:
//
//	z := x.MatMul(y)         // Matrix multiplication
//	s := x.Softmax(-1)       // Softmax over the last dimension
//	m := x.SumDim(0, false)  // Reduce over rows
//
// Binary operations broadcast following NumPy rules: shapes are aligned
// from the right, and dimensions of size 1 stretch to match.
//
// # Gradients
//
// Wrapping any backend with the autodiff package records tensor
// operations on a gradient tape; see package autodiff for the training
// workflow.
package tensor
