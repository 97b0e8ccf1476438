// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/primer-ml/primer/internal/nn"
	"github.com/primer-ml/primer/tensor"
)

// Module is the base interface for all neural network components.
//
// Every module implements:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//   - StateDict: Export parameters as a name -> tensor map
//   - LoadStateDict: Import parameters from such a map
//
// Modules compose to build complex architectures:
//
//	model := nn.NewSequential[*cpu.Backend](
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewLinear(128, 10, backend),
//	)
//
// Note: Module is a type alias so that layers constructed through this
// package and through internal code are interchangeable.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are named tensors with an attached gradient cell. They
// typically represent weights and biases of layers. Sharing one
// Parameter between two modules ties their weights.
//
// Note: Parameter is a type alias because it appears in Module method
// signatures; an interface wrapper here would break implementations.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter wraps an initialized tensor as a trainable parameter.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()   // access the tensor
//	g := weight.Grad()     // gradient, once computed
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}
