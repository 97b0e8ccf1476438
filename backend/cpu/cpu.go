// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/primer-ml/primer/internal/backend/cpu"
	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all tensor operations
// with goroutine parallelism for large kernels.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/primer-ml/primer/backend/cpu"
//	    "github.com/primer-ml/primer/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// PoolConfig controls how kernels are split across goroutines.
type PoolConfig = parallel.Config

// DefaultPool sizes the worker pool to the machine's CPU count.
func DefaultPool() PoolConfig {
	return parallel.DefaultConfig()
}

// SequentialPool forces every kernel onto the calling goroutine.
func SequentialPool() PoolConfig {
	return parallel.Sequential()
}

// NewWithPool creates a CPU backend with an explicit worker pool config.
//
// Example:
//
//	backend := cpu.NewWithPool(cpu.SequentialPool())
func NewWithPool(pool PoolConfig) *Backend {
	return internalcpu.NewWithPool(pool)
}
