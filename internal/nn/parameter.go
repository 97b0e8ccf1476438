package nn

import "github.com/primer-ml/primer/internal/tensor"

// Parameter is a named trainable tensor.
//
// The gradient is attached by the training loop after a backward pass
// and consumed by the optimizer. Sharing one Parameter between two
// modules ties their weights: both forwards read the same tensor, and
// the tape accumulates both contributions into a single gradient.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.Tensor[float32, B]
}

// NewParameter wraps an initialized tensor as a trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string { return p.name }

// Tensor returns the underlying tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] { return p.tensor }

// Grad returns the gradient, or nil before the first backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] { return p.grad }

// SetGrad attaches a gradient computed by the tape.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) { p.grad = grad }

// ZeroGrad drops the gradient ahead of the next training step.
func (p *Parameter[B]) ZeroGrad() { p.grad = nil }

// NumElements returns the element count of the parameter tensor.
func (p *Parameter[B]) NumElements() int { return p.tensor.NumElements() }

// Init overwrites the parameter's values in place using the given
// initializer. The tensor identity is preserved, so tied modules and
// optimizer state keep pointing at the same storage.
func (p *Parameter[B]) Init(init Initializer) {
	init(p.tensor.Data())
}
