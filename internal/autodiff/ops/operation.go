// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation caches the raw tensors from its forward pass and knows
// how to turn the gradient of its output into gradients of its inputs.
// Backward passes are expressed through the Backend primitives wherever
// possible, so a single formula serves every dtype the backend supports.
package ops

import "github.com/primer-ml/primer/internal/tensor"

// Operation is one node of the recorded computation graph.
type Operation interface {
	// Backward converts the gradient of the output into gradients of the
	// inputs, one per Inputs() entry, applying the chain rule for this
	// operation. The returned tensors never alias outputGrad.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the tensors gradients flow back to.
	Inputs() []*tensor.RawTensor

	// Output returns the tensor this operation produced.
	Output() *tensor.RawTensor
}
