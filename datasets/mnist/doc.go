// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mnist loads the MNIST handwritten-digit dataset.
//
// # Overview
//
// This package provides:
//   - IDX format reader for the official MNIST files, with transparent
//     gzip handling
//   - CSV loader for the Kaggle-style export
//   - Deterministic synthetic dataset for tests and offline runs
//   - Batching, train/validation splitting, and one-hot encoding
//
// # Basic Usage
//
//	import (
//	    "github.com/primer-ml/primer/backend/cpu"
//	    "github.com/primer-ml/primer/datasets/mnist"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    data, err := mnist.Load("./data", true, 0)
//	    if err != nil {
//	        log.Fatalf("load mnist: %v", err)
//	    }
//
//	    train, val := data.Split(0.2)
//	    batches, err := mnist.CreateBatches(train, 32, true, backend)
//	    ...
//	}
//
// # File Layout
//
// Load expects the official files (or their .gz forms) in one directory:
//
//	train-images-idx3-ubyte[.gz]
//	train-labels-idx1-ubyte[.gz]
//	t10k-images-idx3-ubyte[.gz]
//	t10k-labels-idx1-ubyte[.gz]
//
// Pixels are normalized from 0-255 bytes to float32 values in [0, 1].
package mnist
