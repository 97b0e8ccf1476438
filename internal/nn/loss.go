package nn

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// MSE is commonly used for regression tasks where the goal is to predict
// continuous values.
//
// The loss is composed from tensor operations, so running it on an
// autodiff backend records the whole computation and Backward produces
// gradients with respect to the predictions.
//
// Example:
//
//	mse := nn.NewMSELoss[Backend]()
//	predictions := model.Forward(input)
//	loss := mse.Forward(predictions, targets)
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward computes the MSE loss.
//
// Predictions and targets must have the same shape. Returns a scalar
// loss with shape [1].
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("MSELoss: predictions shape %v != targets shape %v",
			predictions.Shape(), targets.Shape()))
	}

	diff := predictions.Sub(targets)
	squared := diff.Mul(diff)
	return squared.Sum().MulScalar(1.0 / float64(predictions.NumElements()))
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}

// CrossEntropyLoss computes cross-entropy loss for multi-class classification.
//
// Loss = -mean(log_softmax(logits)[target])
//
// The backend fuses softmax and negative log-likelihood with the
// log-sum-exp trick, so large logits do not overflow float32.
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss[Backend]()
//	logits := model.Forward(input)              // [batch_size, num_classes]
//	loss := criterion.Forward(logits, targets)  // targets: [batch_size] class indices
type CrossEntropyLoss[B tensor.Backend] struct{}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend]() *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{}
}

// Forward computes cross-entropy loss.
//
// Logits hold unnormalized scores with shape [batch_size, num_classes];
// targets hold class indices with shape [batch_size]. Returns the mean
// loss over the batch as a scalar with shape [1].
func (c *CrossEntropyLoss[B]) Forward(
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	return logits.CrossEntropy(targets)
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (c *CrossEntropyLoss[B]) Parameters() []*Parameter[B] {
	return nil
}
