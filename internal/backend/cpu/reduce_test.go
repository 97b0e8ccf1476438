package cpu

import (
	"testing"

	"github.com/primer-ml/primer/internal/tensor"
)

func TestSum(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	got := be.Sum(x)
	if !got.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("shape = %v, want [1]", got.Shape())
	}
	if got.AsFloat32()[0] != 21 {
		t.Errorf("Sum = %v, want 21", got.AsFloat32()[0])
	}
}

func TestSumDim(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{
		1, 2, 3,
		4, 5, 6,
	}, tensor.Shape{2, 3})

	tests := []struct {
		name      string
		dim       int
		keepDim   bool
		wantShape tensor.Shape
		want      []float32
	}{
		{"rows", 0, false, tensor.Shape{3}, []float32{5, 7, 9}},
		{"cols", 1, false, tensor.Shape{2}, []float32{6, 15}},
		{"rows keep", 0, true, tensor.Shape{1, 3}, []float32{5, 7, 9}},
		{"cols keep", 1, true, tensor.Shape{2, 1}, []float32{6, 15}},
		{"negative dim", -1, false, tensor.Shape{2}, []float32{6, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := be.SumDim(x, tt.dim, tt.keepDim)
			if !got.Shape().Equal(tt.wantShape) {
				t.Fatalf("shape = %v, want %v", got.Shape(), tt.wantShape)
			}
			if !float32Close(got.AsFloat32(), tt.want) {
				t.Errorf("SumDim = %v, want %v", got.AsFloat32(), tt.want)
			}
		})
	}
}

func TestSumDim1DCollapsesToScalar(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	got := be.SumDim(x, 0, false)
	if !got.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("shape = %v, want [1]", got.Shape())
	}
	if got.AsFloat32()[0] != 6 {
		t.Errorf("SumDim = %v, want 6", got.AsFloat32()[0])
	}
}

func TestMeanDim(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{
		1, 2, 3,
		4, 5, 6,
	}, tensor.Shape{2, 3})

	got := be.MeanDim(x, 1, false)
	if !float32Close(got.AsFloat32(), []float32{2, 5}) {
		t.Errorf("MeanDim = %v, want [2 5]", got.AsFloat32())
	}
}

func TestMaxDim(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{
		3, 1, 2,
		4, 6, 5,
	}, tensor.Shape{2, 3})

	got := be.MaxDim(x, 1, false)
	if !got.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("shape = %v, want [2]", got.Shape())
	}
	if !float32Close(got.AsFloat32(), []float32{3, 6}) {
		t.Errorf("MaxDim = %v, want [3 6]", got.AsFloat32())
	}

	kept := be.MaxDim(x, 0, true)
	if !kept.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("keepDim shape = %v, want [1 3]", kept.Shape())
	}
	if !float32Close(kept.AsFloat32(), []float32{4, 6, 5}) {
		t.Errorf("MaxDim keep = %v, want [4 6 5]", kept.AsFloat32())
	}
}

func TestArgmax(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{
		3, 1, 2,
		4, 6, 5,
	}, tensor.Shape{2, 3})

	got := be.Argmax(x, 1)
	if got.DType() != tensor.Int32 {
		t.Fatalf("dtype = %v, want int32", got.DType())
	}
	if !got.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("shape = %v, want [2]", got.Shape())
	}
	idx := got.AsInt32()
	if idx[0] != 0 || idx[1] != 1 {
		t.Errorf("Argmax = %v, want [0 1]", idx)
	}
}

func TestArgmaxTieTakesFirst(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{5, 5, 5}, tensor.Shape{1, 3})

	got := be.Argmax(x, 1)
	if got.AsInt32()[0] != 0 {
		t.Errorf("Argmax tie = %v, want 0", got.AsInt32()[0])
	}
}

func TestSumDimOutOfRangePanics(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	defer func() {
		if recover() == nil {
			t.Error("SumDim with out-of-range dim did not panic")
		}
	}()
	be.SumDim(x, 3, false)
}

func TestSumInt64(t *testing.T) {
	be := newTestBackend()
	raw, err := tensor.NewRaw(tensor.Shape{4}, tensor.Int64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsInt64(), []int64{10, 20, 30, 40})

	got := be.Sum(raw)
	if got.AsInt64()[0] != 100 {
		t.Errorf("Sum = %v, want 100", got.AsInt64()[0])
	}
}
