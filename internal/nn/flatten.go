package nn

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// Flatten collapses all dimensions after the batch dimension.
//
// It is the usual bridge from convolutional feature maps to fully
// connected layers.
//
// Input shape:  [batch, d1, d2, ...]
// Output shape: [batch, d1*d2*...]
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a Flatten layer.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward reshapes [batch, d1, d2, ...] into [batch, d1*d2*...].
func (f *Flatten[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("flatten: expected at least 2D input, got shape %v", shape))
	}

	rest := 1
	for _, dim := range shape[1:] {
		rest *= dim
	}
	return input.Reshape(tensor.Shape{shape[0], rest})
}

// Parameters returns all trainable parameters (empty for Flatten).
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (f *Flatten[B]) String() string {
	return "Flatten()"
}

// StateDict returns an empty map: Flatten holds no state.
func (f *Flatten[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

// LoadStateDict is a no-op: Flatten holds no state.
func (f *Flatten[B]) LoadStateDict(map[string]*tensor.RawTensor) error {
	return nil
}
