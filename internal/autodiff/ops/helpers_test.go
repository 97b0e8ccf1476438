package ops

import (
	"testing"

	"github.com/primer-ml/primer/internal/backend/cpu"
	"github.com/primer-ml/primer/internal/tensor"
)

func rawFromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func TestReduceBroadcastSameShapeShares(t *testing.T) {
	be := cpu.New()
	grad := rawFromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	out := reduceBroadcast(grad, tensor.Shape{3}, be)

	if out == grad {
		t.Fatal("result must be a distinct handle")
	}
	if grad.IsUnique() {
		t.Error("clone should share the buffer, keeping both non-unique")
	}
	for i, v := range out.AsFloat32() {
		if v != grad.AsFloat32()[i] {
			t.Errorf("value[%d] = %v, want %v", i, v, grad.AsFloat32()[i])
		}
	}
}

func TestReduceBroadcastSumsLeadingDims(t *testing.T) {
	be := cpu.New()
	grad := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := reduceBroadcast(grad, tensor.Shape{3}, be)

	if !out.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("shape = %v, want [3]", out.Shape())
	}
	want := []float32{5, 7, 9}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestReduceBroadcastSumsSizeOneDims(t *testing.T) {
	be := cpu.New()
	grad := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	out := reduceBroadcast(grad, tensor.Shape{3, 1}, be)

	if !out.Shape().Equal(tensor.Shape{3, 1}) {
		t.Fatalf("shape = %v, want [3 1]", out.Shape())
	}
	want := []float32{3, 7, 11}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestReduceBroadcastToSingleElement(t *testing.T) {
	be := cpu.New()
	grad := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	out := reduceBroadcast(grad, tensor.Shape{1}, be)

	if !out.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("shape = %v, want [1]", out.Shape())
	}
	if out.AsFloat32()[0] != 10 {
		t.Errorf("out = %v, want 10", out.AsFloat32()[0])
	}
}

func TestOneHot(t *testing.T) {
	logits := rawFromFloat32(t, make([]float32, 6), tensor.Shape{2, 3})
	targets, err := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(targets.AsInt32(), []int32{2, 0})

	got := oneHot(targets, logits).AsFloat32()
	want := []float32{0, 0, 1, 1, 0, 0}
	for i, v := range got {
		if v != want[i] {
			t.Errorf("oneHot[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestPoolWinners(t *testing.T) {
	input := rawFromFloat32(t, []float32{
		1, 3,
		4, 2,
	}, tensor.Shape{1, 1, 2, 2})
	output := rawFromFloat32(t, []float32{4}, tensor.Shape{1, 1, 1, 1})

	winners := poolWinners(input, output, 2, 2)
	if len(winners) != 1 || winners[0] != 2 {
		t.Errorf("winners = %v, want [2]", winners)
	}
}

func TestNormalizeDim(t *testing.T) {
	if d := normalizeDim(-1, 3); d != 2 {
		t.Errorf("normalizeDim(-1, 3) = %d, want 2", d)
	}
	if d := normalizeDim(1, 3); d != 1 {
		t.Errorf("normalizeDim(1, 3) = %d, want 1", d)
	}

	defer func() {
		if recover() == nil {
			t.Error("out-of-range dim did not panic")
		}
	}()
	normalizeDim(3, 3)
}
