// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Conv2D, MaxPool2D, Flatten
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: CrossEntropyLoss, MSELoss
//   - Containers: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Zeros, Ones, Randn, and re-applicable
//     Initializer presets (XavierUniform, Normal, Constant)
//   - Metrics: Accuracy
//
// # Basic Usage
//
//	import (
//	    "github.com/primer-ml/primer/backend/cpu"
//	    "github.com/primer-ml/primer/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Build a simple MLP
//	    model := nn.NewSequential[*cpu.Backend](
//	        nn.NewLinear(784, 128, backend),
//	        nn.NewReLU[*cpu.Backend](),
//	        nn.NewLinear(128, 10, backend),
//	    )
//
//	    // Forward pass
//	    output := model.Forward(input)
//	}
//
// # Training
//
// Layers route every computation through the backend, so building the
// model on an autodiff backend records the forward pass for gradient
// computation:
//
//	backend := autodiff.New(cpu.New())
//	model := nn.NewSequential[...](...)
//	criterion := nn.NewCrossEntropyLoss[...]()
//
//	backend.Tape().StartRecording()
//	loss := criterion.Forward(model.Forward(x), y)
//	grads := autodiff.Backward(loss, backend)
//
// # Weight Tying
//
// Parameters are shared by construction. A layer built with
// NewLinearFrom around an existing Parameter computes with the same
// storage as every other holder, gradients from all uses accumulate
// into one entry, and re-initialization is visible through every view:
//
//	shared := nn.NewParameter("weight", nn.Xavier(8, 8, tensor.Shape{8, 8}, backend))
//	encoder := nn.NewLinearFrom(shared, nil, backend)
//	decoder := nn.NewLinearFrom(shared, nil, backend)
package nn
