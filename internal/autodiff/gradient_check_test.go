package autodiff_test

import (
	"math"
	"slices"
	"testing"

	"github.com/primer-ml/primer/internal/autodiff"
	"github.com/primer-ml/primer/internal/backend/cpu"
	"github.com/primer-ml/primer/internal/tensor"
)

// Every analytic gradient is verified against central finite
// differences: grad_i ~ (L(x + eps*e_i) - L(x - eps*e_i)) / (2*eps).
// Inputs are kept away from kinks (ReLU at 0, pooling ties) so the
// numerical estimate is well-defined.

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// checkGradient compares the taped gradient of a scalar loss against
// finite differences, element by element.
func checkGradient(t *testing.T, shape tensor.Shape, input []float32, forward func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor) {
	t.Helper()

	be := autodiff.New(cpu.New())
	be.Tape().StartRecording()

	x := tensor.FromSlice(slices.Clone(input), shape, be)
	loss := forward(be, x.Raw())
	if !loss.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("loss shape = %v, want scalar", loss.Shape())
	}

	grads := autodiff.Backward(tensor.New[float32](loss, be), be)
	analytic := grads[x.Raw()]
	if analytic == nil {
		t.Fatal("no gradient reached the input")
	}
	got := analytic.AsFloat32()

	const eps = 1e-2
	for i := range input {
		bumped := slices.Clone(input)
		bumped[i] += eps
		plus := evalLoss(forward, shape, bumped)
		bumped[i] -= 2 * eps
		minus := evalLoss(forward, shape, bumped)
		want := (plus - minus) / (2 * eps)

		diff := math.Abs(float64(got[i] - want))
		tol := 1e-3 + 1e-2*math.Max(math.Abs(float64(got[i])), math.Abs(float64(want)))
		if diff > tol {
			t.Errorf("grad[%d] = %g, finite difference %g (diff %g)", i, got[i], want, diff)
		}
	}
}

// evalLoss runs the forward function on a fresh, non-recording backend.
func evalLoss(forward func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor, shape tensor.Shape, vals []float32) float32 {
	be := autodiff.New(cpu.New())
	x := tensor.FromSlice(slices.Clone(vals), shape, be)
	return forward(be, x.Raw()).AsFloat32()[0]
}

func TestGradSquare(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{0.5, -1.5, 2},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.Mul(x, x))
		})
}

func TestGradAddBroadcast(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{1, -0.5, 2},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			c := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, be)
			return be.Sum(be.Mul(be.Add(c.Raw(), x), c.Raw()))
		})
}

func TestGradSub(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{0.3, 1.7, -0.8},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			c := tensor.FromSlice([]float32{2, -1, 0.5}, tensor.Shape{3}, be)
			return be.Sum(be.Mul(be.Sub(c.Raw(), x), x))
		})
}

func TestGradDiv(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{1.5, 2.5, -1.2},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			c := tensor.FromSlice([]float32{3, 1, 2}, tensor.Shape{3}, be)
			return be.Sum(be.Div(c.Raw(), x))
		})
}

func TestGradScalarChain(t *testing.T) {
	checkGradient(t, tensor.Shape{4}, []float32{1, -2, 0.5, 3},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.MulScalar(be.AddScalar(be.Neg(x), 2), 3))
		})
}

func TestGradPowScalar(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{1.2, 0.7, 2.1},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.PowScalar(x, 3))
		})
}

func TestGradMatMulFirstOperand(t *testing.T) {
	checkGradient(t, tensor.Shape{2, 3}, []float32{1, -1, 0.5, 2, 0.3, -0.7},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{1, 2, -1, 0.5, 3, 1}, tensor.Shape{3, 2}, be)
			return be.Sum(be.MatMul(x, w.Raw()))
		})
}

func TestGradMatMulSecondOperand(t *testing.T) {
	checkGradient(t, tensor.Shape{3, 2}, []float32{1, 2, -1, 0.5, 3, 1},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			a := tensor.FromSlice([]float32{1, -1, 0.5, 2, 0.3, -0.7}, tensor.Shape{2, 3}, be)
			return be.Sum(be.MatMul(a.Raw(), x))
		})
}

func TestGradExp(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{0.1, -0.5, 1},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.Exp(x))
		})
}

func TestGradLog(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{0.8, 2, 5},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.Log(x))
		})
}

func TestGradSqrt(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{1, 4, 2.5},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.Sqrt(x))
		})
}

func TestGradReLU(t *testing.T) {
	checkGradient(t, tensor.Shape{4}, []float32{-1.5, 0.8, 2.1, -0.3},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.Mul(be.ReLU(x), x))
		})
}

func TestGradSigmoid(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{-1, 0.5, 2},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.Sigmoid(x))
		})
}

func TestGradTanh(t *testing.T) {
	checkGradient(t, tensor.Shape{3}, []float32{-0.8, 0.2, 1.5},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.Tanh(x))
		})
}

func TestGradSoftmax(t *testing.T) {
	// Weighting the probabilities keeps the loss sensitive to x; the sum
	// of a softmax row alone is constant 1 with zero gradient.
	checkGradient(t, tensor.Shape{2, 3}, []float32{1, 2, 0.5, -1, 0.3, 1.2},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{3, 1, -2, 0.5, 2, -1}, tensor.Shape{2, 3}, be)
			return be.Sum(be.Mul(be.Softmax(x, 1), w.Raw()))
		})
}

func TestGradCrossEntropy(t *testing.T) {
	targets := []int32{2, 0}
	checkGradient(t, tensor.Shape{2, 3}, []float32{0.2, 1.1, -0.4, 2.0, 0.1, 0.6},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			raw, err := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.CPU)
			if err != nil {
				panic(err)
			}
			copy(raw.AsInt32(), targets)
			return be.CrossEntropy(x, raw)
		})
}

func TestGradSumDim(t *testing.T) {
	checkGradient(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{2, -1, 0.5}, tensor.Shape{3}, be)
			return be.Sum(be.Mul(be.SumDim(x, 0, false), w.Raw()))
		})
}

func TestGradMeanDim(t *testing.T) {
	checkGradient(t, tensor.Shape{2, 3}, []float32{1, -2, 3, 0.5, 2, -1},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{1.5, -0.5}, tensor.Shape{2}, be)
			return be.Sum(be.Mul(be.MeanDim(x, 1, false), w.Raw()))
		})
}

func TestGradMaxDim(t *testing.T) {
	// Distinct values per row keep the winner stable under perturbation.
	checkGradient(t, tensor.Shape{2, 3}, []float32{1, 5, 3, 9, 2, 7},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{2, -1}, tensor.Shape{2}, be)
			return be.Sum(be.Mul(be.MaxDim(x, 1, false), w.Raw()))
		})
}

func TestGradTranspose(t *testing.T) {
	checkGradient(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{1, -1, 2, 0.5, -2, 3}, tensor.Shape{3, 2}, be)
			return be.Sum(be.Mul(be.Transpose(x), w.Raw()))
		})
}

func TestGradReshape(t *testing.T) {
	checkGradient(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{1, -1, 2, -2, 3, -3}, tensor.Shape{3, 2}, be)
			return be.Sum(be.Mul(be.Reshape(x, tensor.Shape{3, 2}), w.Raw()))
		})
}

func TestGradConv2DInput(t *testing.T) {
	input := []float32{
		0.5, -1, 2, 0.3,
		1.5, 0.7, -0.2, 1,
		-0.8, 1.2, 0.4, -1.5,
		2, 0.1, -0.6, 0.9,
	}
	checkGradient(t, tensor.Shape{1, 1, 4, 4}, input,
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			k := tensor.FromSlice([]float32{1, -0.5, 0.25, 2, 0.75, -1, 0.5, 1, -0.25}, tensor.Shape{1, 1, 3, 3}, be)
			return be.Sum(be.Conv2D(x, k.Raw(), 1, 1))
		})
}

func TestGradConv2DKernel(t *testing.T) {
	kernel := []float32{1, -0.5, 0.25, 2, 0.75, -1, 0.5, 1}
	checkGradient(t, tensor.Shape{2, 1, 2, 2}, kernel,
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			in := tensor.FromSlice([]float32{
				0.5, -1, 2,
				1.5, 0.7, -0.2,
				-0.8, 1.2, 0.4,
			}, tensor.Shape{1, 1, 3, 3}, be)
			return be.Sum(be.Conv2D(in.Raw(), x, 1, 0))
		})
}

func TestGradMaxPool2D(t *testing.T) {
	input := []float32{
		1, 5, 2, 8,
		3, 7, 4, 6,
		9, 11, 10, 12,
		13, 15, 14, 16,
	}
	checkGradient(t, tensor.Shape{1, 1, 4, 4}, input,
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			return be.Sum(be.MaxPool2D(x, 2, 2))
		})
}

func TestGradMLPChain(t *testing.T) {
	// A miniature classifier end to end: linear layer, ReLU, then fused
	// cross-entropy. Exercises gradient flow through the whole chain.
	checkGradient(t, tensor.Shape{2, 4}, []float32{0.5, -1, 2, 0.3, 1.5, 0.7, -0.2, 1},
		func(be adBackend, x *tensor.RawTensor) *tensor.RawTensor {
			w := tensor.FromSlice([]float32{
				0.2, -0.4, 0.6,
				0.1, 0.3, -0.5,
				-0.2, 0.7, 0.4,
				0.9, -0.1, 0.8,
			}, tensor.Shape{4, 3}, be)
			bias := tensor.FromSlice([]float32{0.1, -0.2, 0.3}, tensor.Shape{3}, be)
			targets, err := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.CPU)
			if err != nil {
				panic(err)
			}
			copy(targets.AsInt32(), []int32{1, 2})

			hidden := be.ReLU(be.Add(be.MatMul(x, w.Raw()), bias.Raw()))
			return be.CrossEntropy(hidden, targets)
		})
}
