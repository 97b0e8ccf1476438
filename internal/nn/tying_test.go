package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primer-ml/primer/internal/autodiff"
	"github.com/primer-ml/primer/internal/backend/cpu"
	"github.com/primer-ml/primer/internal/nn"
	"github.com/primer-ml/primer/internal/tensor"
)

// TestTiedLinear_SharedStorage verifies that two layers built around the
// same parameter compute with the same storage.
func TestTiedLinear_SharedStorage(t *testing.T) {
	backend := cpu.New()

	shared := nn.NewParameter("weight",
		tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend))

	first := nn.NewLinearFrom(shared, nil, backend)
	second := nn.NewLinearFrom(shared, nil, backend)

	require.Same(t, first.Weight(), second.Weight())

	// Writing through one view is visible through the other.
	first.Weight().Tensor().Data()[0] = 42
	assert.Equal(t, float32(42), second.Weight().Tensor().Data()[0])
}

// TestTiedLinear_Reinit verifies that re-initialization reaches every
// view of a shared parameter.
func TestTiedLinear_Reinit(t *testing.T) {
	backend := cpu.New()

	shared := nn.NewParameter("weight",
		tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend))
	first := nn.NewLinearFrom(shared, nil, backend)
	second := nn.NewLinearFrom(shared, nil, backend)

	shared.Init(nn.Constant(5))

	for _, layer := range []*nn.Linear[cpuB]{first, second} {
		for i, v := range layer.Weight().Tensor().Data() {
			require.Equal(t, float32(5), v, "weight[%d]", i)
		}
	}
}

// TestTiedLinear_GradientAccumulates verifies that backward through two
// uses of a tied weight sums both contributions.
func TestTiedLinear_GradientAccumulates(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// One scalar weight w = 3 used twice: loss = sum(x @ W.T @ W.T)
	// with x = 2 gives loss = 2w^2, so dloss/dw = 4w = 12.
	shared := nn.NewParameter("weight",
		tensor.FromSlice([]float32{3}, tensor.Shape{1, 1}, backend))
	first := nn.NewLinearFrom(shared, nil, backend)
	second := nn.NewLinearFrom(shared, nil, backend)

	backend.Tape().StartRecording()
	defer backend.Tape().Clear()

	x := tensor.FromSlice([]float32{2}, tensor.Shape{1, 1}, backend)
	loss := second.Forward(first.Forward(x)).Sum()

	require.InDelta(t, 18.0, float64(loss.Data()[0]), 1e-5)

	grads := autodiff.Backward(loss, backend)

	grad, ok := grads[shared.Tensor().Raw()]
	require.True(t, ok, "tied weight should have a gradient")
	assert.InDelta(t, 12.0, float64(grad.AsFloat32()[0]), 1e-4)
}

// TestSequential_DedupesTiedParameters verifies that a shared parameter
// is reported once.
func TestSequential_DedupesTiedParameters(t *testing.T) {
	backend := cpu.New()

	shared := nn.NewParameter("weight",
		tensor.FromSlice([]float32{1, 0, 0, 1}, tensor.Shape{2, 2}, backend))
	model := nn.NewSequential[cpuB](
		nn.NewLinearFrom(shared, nil, backend),
		nn.NewLinearFrom(shared, nil, backend),
	)

	params := model.Parameters()
	require.Len(t, params, 1)
	assert.Same(t, shared, params[0])
}

// TestSequential_SameModuleTwice verifies dedup when one module instance
// appears at two positions.
func TestSequential_SameModuleTwice(t *testing.T) {
	backend := cpu.New()

	layer := nn.NewLinear(2, 2, backend)
	model := nn.NewSequential[cpuB](layer, layer)

	assert.Len(t, model.Parameters(), 2) // weight and bias, each once
}
