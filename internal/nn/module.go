// Package nn implements neural network building blocks on top of the
// tensor and autodiff layers.
//
// The pieces compose the way PyTorch's nn.Module does, adapted to Go
// generics:
//   - Module: the interface every layer, container, and loss satisfies
//   - Parameter: a named trainable tensor with its gradient
//   - Linear, Conv2D, MaxPool2D, Flatten: layers
//   - ReLU, Sigmoid, Tanh: activations
//   - Sequential: chains modules into a model
//   - MSELoss, CrossEntropyLoss: training criteria
//
// Layers route every computation through the backend, so running them
// on an autodiff backend records the full forward pass for training.
package nn

import "github.com/primer-ml/primer/internal/tensor"

// Module is the interface shared by all network components.
//
// State dictionaries expose parameters as raw tensors keyed by name,
// decoupled from any storage format; containers prefix nested names
// ("0.weight") the way PyTorch does.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the trainable parameters, or nil for stateless
	// modules such as activations.
	Parameters() []*Parameter[B]

	// StateDict maps parameter names to their raw tensors.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies values from a state dictionary into this
	// module's parameters, validating names, shapes, and dtypes.
	LoadStateDict(state map[string]*tensor.RawTensor) error
}
