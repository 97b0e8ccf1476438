package nn_test

import (
	"math"
	"testing"

	"github.com/primer-ml/primer/internal/autodiff"
	"github.com/primer-ml/primer/internal/backend/cpu"
	"github.com/primer-ml/primer/internal/nn"
	"github.com/primer-ml/primer/internal/tensor"
)

// cpuB and adB shorten backend type parameters in tests.
type (
	cpuB = *cpu.CPUBackend
	adB  = *autodiff.AutodiffBackend[*cpu.CPUBackend]
)

// Every layer must satisfy the Module interface.
var (
	_ nn.Module[cpuB] = (*nn.Linear[cpuB])(nil)
	_ nn.Module[cpuB] = (*nn.Conv2D[cpuB])(nil)
	_ nn.Module[cpuB] = (*nn.MaxPool2D[cpuB])(nil)
	_ nn.Module[cpuB] = (*nn.Flatten[cpuB])(nil)
	_ nn.Module[cpuB] = (*nn.ReLU[cpuB])(nil)
	_ nn.Module[cpuB] = (*nn.Sigmoid[cpuB])(nil)
	_ nn.Module[cpuB] = (*nn.Tanh[cpuB])(nil)
	_ nn.Module[cpuB] = (*nn.Sequential[cpuB])(nil)
)

// Helper to check if values are approximately equal.
//
//nolint:unparam // epsilon is always 1e-5 in tests, but keeping it as parameter for flexibility
func floatEqual(a, b, epsilon float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

// TestParameter tests Parameter creation and methods.
func TestParameter(t *testing.T) {
	backend := cpu.New()

	data := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	param := nn.NewParameter("test_param", data)

	if param.Name() != "test_param" {
		t.Errorf("Name() = %s, want test_param", param.Name())
	}
	if param.Tensor() != data {
		t.Error("Tensor() should return the original tensor")
	}
	if param.NumElements() != 3 {
		t.Errorf("NumElements() = %d, want 3", param.NumElements())
	}
	if param.Grad() != nil {
		t.Error("Grad() should initially be nil")
	}

	grad := tensor.FromSlice([]float32{0.1, 0.2, 0.3}, tensor.Shape{3}, backend)
	param.SetGrad(grad)
	if param.Grad() != grad {
		t.Error("SetGrad() should set the gradient")
	}

	param.ZeroGrad()
	if param.Grad() != nil {
		t.Error("ZeroGrad() should clear the gradient")
	}
}

// TestParameter_Init tests in-place re-initialization.
func TestParameter_Init(t *testing.T) {
	backend := cpu.New()

	data := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	param := nn.NewParameter("weight", data)

	param.Init(nn.Constant(7))

	// Same storage, new values.
	if param.Tensor() != data {
		t.Error("Init should not replace the tensor")
	}
	for i, v := range data.Data() {
		if v != 7 {
			t.Errorf("data[%d] = %f, want 7", i, v)
		}
	}
}

// TestLinear_Creation tests Linear layer initialization.
func TestLinear_Creation(t *testing.T) {
	backend := cpu.New()

	layer := nn.NewLinear(10, 5, backend)

	if layer.InFeatures() != 10 {
		t.Errorf("InFeatures() = %d, want 10", layer.InFeatures())
	}
	if layer.OutFeatures() != 5 {
		t.Errorf("OutFeatures() = %d, want 5", layer.OutFeatures())
	}

	// Weight shape: [out_features, in_features]
	weight := layer.Weight().Tensor()
	if !weight.Shape().Equal(tensor.Shape{5, 10}) {
		t.Errorf("Weight shape = %v, want [5 10]", weight.Shape())
	}

	// Bias shape: [out_features], initialized to zeros
	bias := layer.Bias().Tensor()
	if !bias.Shape().Equal(tensor.Shape{5}) {
		t.Errorf("Bias shape = %v, want [5]", bias.Shape())
	}
	for i, v := range bias.Data() {
		if v != 0 {
			t.Errorf("Bias[%d] = %f, want 0", i, v)
		}
	}

	params := layer.Parameters()
	if len(params) != 2 {
		t.Errorf("Parameters() length = %d, want 2", len(params))
	}
}

// TestLinear_Forward tests Linear layer forward pass with known weights.
func TestLinear_Forward(t *testing.T) {
	backend := cpu.New()

	layer := nn.NewLinear(2, 2, backend)

	// Weight: [[1, 2], [3, 4]] (out=2, in=2)
	copy(layer.Weight().Tensor().Data(), []float32{1, 2, 3, 4})
	// Bias: [0.5, 1.0]
	copy(layer.Bias().Tensor().Data(), []float32{0.5, 1.0})

	// y = x @ W.T + b with x = [[1, 1]]:
	//   y[0] = 1*1 + 1*2 + 0.5 = 3.5
	//   y[1] = 1*3 + 1*4 + 1.0 = 8.0
	input := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2}, backend)
	output := layer.Forward(input)

	if !output.Shape().Equal(tensor.Shape{1, 2}) {
		t.Fatalf("output shape = %v, want [1 2]", output.Shape())
	}

	want := []float32{3.5, 8.0}
	for i, v := range output.Data() {
		if !floatEqual(v, want[i], 1e-5) {
			t.Errorf("output[%d] = %f, want %f", i, v, want[i])
		}
	}
}

// TestLinear_ForwardBatch tests forward pass with batch size > 1.
func TestLinear_ForwardBatch(t *testing.T) {
	backend := cpu.New()

	layer := nn.NewLinear(3, 2, backend)
	copy(layer.Weight().Tensor().Data(), []float32{1, 0, 0, 0, 1, 0})

	input := tensor.FromSlice([]float32{
		1, 2, 3,
		4, 5, 6,
	}, tensor.Shape{2, 3}, backend)
	output := layer.Forward(input)

	if !output.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("output shape = %v, want [2 2]", output.Shape())
	}

	// Weight picks out the first two input features; bias is zero.
	want := []float32{1, 2, 4, 5}
	for i, v := range output.Data() {
		if !floatEqual(v, want[i], 1e-5) {
			t.Errorf("output[%d] = %f, want %f", i, v, want[i])
		}
	}
}

// TestLinear_NoBias tests a layer built without a bias term.
func TestLinear_NoBias(t *testing.T) {
	backend := cpu.New()

	weight := nn.NewParameter("weight",
		tensor.FromSlice([]float32{2, 0, 0, 2}, tensor.Shape{2, 2}, backend))
	layer := nn.NewLinearFrom(weight, nil, backend)

	if layer.Bias() != nil {
		t.Error("Bias() should be nil")
	}
	if len(layer.Parameters()) != 1 {
		t.Errorf("Parameters() length = %d, want 1", len(layer.Parameters()))
	}

	input := tensor.FromSlice([]float32{1, 3}, tensor.Shape{1, 2}, backend)
	output := layer.Forward(input)

	want := []float32{2, 6}
	for i, v := range output.Data() {
		if !floatEqual(v, want[i], 1e-5) {
			t.Errorf("output[%d] = %f, want %f", i, v, want[i])
		}
	}

	state := layer.StateDict()
	if _, ok := state["bias"]; ok {
		t.Error("StateDict should not contain bias")
	}
}

// TestLinear_ForwardInvalidShape tests input validation.
func TestLinear_ForwardInvalidShape(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(4, 2, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for wrong feature count")
		}
	}()

	input := tensor.Zeros[float32](tensor.Shape{1, 3}, backend)
	layer.Forward(input)
}

// TestLinear_StateDictRoundTrip tests saving and loading parameters.
func TestLinear_StateDictRoundTrip(t *testing.T) {
	backend := cpu.New()

	src := nn.NewLinear(3, 2, backend)
	copy(src.Weight().Tensor().Data(), []float32{1, 2, 3, 4, 5, 6})
	copy(src.Bias().Tensor().Data(), []float32{7, 8})

	dst := nn.NewLinear(3, 2, backend)
	if err := dst.LoadStateDict(src.StateDict()); err != nil {
		t.Fatalf("LoadStateDict failed: %v", err)
	}

	for i, v := range dst.Weight().Tensor().Data() {
		if v != src.Weight().Tensor().Data()[i] {
			t.Errorf("weight[%d] = %f, want %f", i, v, src.Weight().Tensor().Data()[i])
		}
	}
	for i, v := range dst.Bias().Tensor().Data() {
		if v != src.Bias().Tensor().Data()[i] {
			t.Errorf("bias[%d] = %f, want %f", i, v, src.Bias().Tensor().Data()[i])
		}
	}
}

// TestLinear_LoadStateDictErrors tests state dict validation.
func TestLinear_LoadStateDictErrors(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend)

	// Missing weight.
	if err := layer.LoadStateDict(map[string]*tensor.RawTensor{}); err == nil {
		t.Error("expected error for missing weight")
	}

	// Wrong shape.
	bad := tensor.Zeros[float32](tensor.Shape{2, 2}, backend)
	state := map[string]*tensor.RawTensor{"weight": bad.Raw()}
	if err := layer.LoadStateDict(state); err == nil {
		t.Error("expected error for weight shape mismatch")
	}
}

// TestXavier tests Xavier initialization bounds.
func TestXavier(t *testing.T) {
	backend := cpu.New()

	fanIn, fanOut := 100, 50
	w := nn.Xavier(fanIn, fanOut, tensor.Shape{fanOut, fanIn}, backend)

	bound := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))
	nonZero := 0
	for i, v := range w.Data() {
		if v < -bound || v > bound {
			t.Fatalf("w[%d] = %f outside [-%f, %f]", i, v, bound, bound)
		}
		if v != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("Xavier initialization produced all zeros")
	}
}

// TestNormalInitializer tests mean and spread of the Normal preset.
func TestNormalInitializer(t *testing.T) {
	data := make([]float32, 10000)
	nn.Normal(2.0, 0.5)(data)

	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	mean := sum / float64(len(data))

	var variance float64
	for _, v := range data {
		d := float64(v) - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(data)))

	if math.Abs(mean-2.0) > 0.05 {
		t.Errorf("mean = %f, want ~2.0", mean)
	}
	if math.Abs(std-0.5) > 0.05 {
		t.Errorf("std = %f, want ~0.5", std)
	}
}

// TestConstantInitializer tests the Constant preset.
func TestConstantInitializer(t *testing.T) {
	data := []float32{1, 2, 3}
	nn.Constant(-1.5)(data)
	for i, v := range data {
		if v != -1.5 {
			t.Errorf("data[%d] = %f, want -1.5", i, v)
		}
	}
}

// TestSequential_Forward tests chaining modules.
func TestSequential_Forward(t *testing.T) {
	backend := autodiff.New(cpu.New())

	model := nn.NewSequential[adB](
		nn.NewLinear(4, 8, backend),
		nn.NewReLU[adB](),
		nn.NewLinear(8, 2, backend),
	)

	input := tensor.Randn[float32](tensor.Shape{3, 4}, backend)
	output := model.Forward(input)

	if !output.Shape().Equal(tensor.Shape{3, 2}) {
		t.Errorf("output shape = %v, want [3 2]", output.Shape())
	}
}

// TestSequential_Build tests incremental construction.
func TestSequential_Build(t *testing.T) {
	backend := cpu.New()

	model := nn.NewSequential[cpuB]()
	if model.Len() != 0 {
		t.Errorf("Len() = %d, want 0", model.Len())
	}

	layer := nn.NewLinear(2, 2, backend)
	model.Add(layer)
	model.Add(nn.NewReLU[cpuB]())

	if model.Len() != 2 {
		t.Errorf("Len() = %d, want 2", model.Len())
	}
	if model.Module(0) != nn.Module[cpuB](layer) {
		t.Error("Module(0) should return the first module")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for out-of-bounds index")
		}
	}()
	model.Module(5)
}

// TestSequential_Parameters tests parameter collection.
func TestSequential_Parameters(t *testing.T) {
	backend := cpu.New()

	model := nn.NewSequential[cpuB](
		nn.NewLinear(4, 8, backend),
		nn.NewReLU[cpuB](),
		nn.NewLinear(8, 2, backend),
	)

	// Two Linear layers with weight+bias each; ReLU contributes none.
	params := model.Parameters()
	if len(params) != 4 {
		t.Errorf("Parameters() length = %d, want 4", len(params))
	}
}

// TestSequential_StateDict tests index-prefixed naming and loading.
func TestSequential_StateDict(t *testing.T) {
	backend := cpu.New()

	newModel := func() *nn.Sequential[cpuB] {
		return nn.NewSequential[cpuB](
			nn.NewLinear(3, 4, backend),
			nn.NewReLU[cpuB](),
			nn.NewLinear(4, 2, backend),
		)
	}

	src := newModel()
	state := src.StateDict()

	for _, key := range []string{"0.weight", "0.bias", "2.weight", "2.bias"} {
		if _, ok := state[key]; !ok {
			t.Errorf("StateDict missing key %q", key)
		}
	}
	if len(state) != 4 {
		t.Errorf("StateDict has %d entries, want 4", len(state))
	}

	dst := newModel()
	if err := dst.LoadStateDict(state); err != nil {
		t.Fatalf("LoadStateDict failed: %v", err)
	}

	srcW := src.StateDict()["2.weight"].AsFloat32()
	dstW := dst.StateDict()["2.weight"].AsFloat32()
	for i := range srcW {
		if srcW[i] != dstW[i] {
			t.Fatalf("weight[%d] = %f, want %f", i, dstW[i], srcW[i])
		}
	}
}

// TestSequential_LoadStateDictError tests error propagation from children.
func TestSequential_LoadStateDictError(t *testing.T) {
	backend := cpu.New()

	model := nn.NewSequential[cpuB](nn.NewLinear(3, 2, backend))

	bad := tensor.Zeros[float32](tensor.Shape{9, 9}, backend)
	err := model.LoadStateDict(map[string]*tensor.RawTensor{"0.weight": bad.Raw()})
	if err == nil {
		t.Error("expected error for shape mismatch in child module")
	}
}
