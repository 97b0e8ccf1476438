package cpu

import (
	"testing"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

func newTestBackend() *CPUBackend {
	return New()
}

func fromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func float32Close(a, b []float32) bool {
	const epsilon = 1e-5
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > epsilon {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	be := New()
	if be.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", be.Name())
	}
	if be.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", be.Device())
	}
}

func TestBinaryOpsSameShape(t *testing.T) {
	be := newTestBackend()

	tests := []struct {
		name string
		op   func(a, b *tensor.RawTensor) *tensor.RawTensor
		want []float32
	}{
		{"add", be.Add, []float32{5, 7, 9}},
		{"sub", be.Sub, []float32{-3, -3, -3}},
		{"mul", be.Mul, []float32{4, 10, 18}},
		{"div", be.Div, []float32{0.25, 0.4, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
			b := fromFloat32(t, []float32{4, 5, 6}, tensor.Shape{3})
			got := tt.op(a, b)
			if !float32Close(got.AsFloat32(), tt.want) {
				t.Errorf("%s = %v, want %v", tt.name, got.AsFloat32(), tt.want)
			}
		})
	}
}

func TestAddInPlaceWhenUnique(t *testing.T) {
	be := newTestBackend()
	a := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromFloat32(t, []float32{10, 20}, tensor.Shape{2})

	out := be.Add(a, b)
	if out != a {
		t.Error("Add with unique lhs did not reuse its storage")
	}
	if !float32Close(out.AsFloat32(), []float32{11, 22}) {
		t.Errorf("in-place Add = %v", out.AsFloat32())
	}
}

func TestAddCopiesWhenShared(t *testing.T) {
	be := newTestBackend()
	a := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromFloat32(t, []float32{10, 20}, tensor.Shape{2})

	keep := a.Clone() // a's buffer is now shared
	out := be.Add(a, b)

	if out == a {
		t.Error("Add mutated a shared buffer in place")
	}
	if !float32Close(keep.AsFloat32(), []float32{1, 2}) {
		t.Errorf("shared clone changed to %v", keep.AsFloat32())
	}
	if !float32Close(out.AsFloat32(), []float32{11, 22}) {
		t.Errorf("Add = %v, want [11 22]", out.AsFloat32())
	}
}

func TestPinnedInputStaysIntact(t *testing.T) {
	be := newTestBackend()
	a := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromFloat32(t, []float32{10, 20}, tensor.Shape{2})

	restore := a.ForceNonUnique()
	defer restore()

	be.Add(a, b)
	if !float32Close(a.AsFloat32(), []float32{1, 2}) {
		t.Errorf("pinned input changed to %v", a.AsFloat32())
	}
}

func TestBroadcastRow(t *testing.T) {
	be := newTestBackend()
	a := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	row := fromFloat32(t, []float32{10, 20, 30}, tensor.Shape{3})

	got := be.Add(a, row)
	want := []float32{11, 22, 33, 14, 25, 36}
	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	if !float32Close(got.AsFloat32(), want) {
		t.Errorf("broadcast add = %v, want %v", got.AsFloat32(), want)
	}
}

func TestBroadcastColumnTimesRow(t *testing.T) {
	be := newTestBackend()
	col := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3, 1})
	row := fromFloat32(t, []float32{10, 100}, tensor.Shape{1, 2})

	got := be.Mul(col, row)
	want := []float32{10, 100, 20, 200, 30, 300}
	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", got.Shape())
	}
	if !float32Close(got.AsFloat32(), want) {
		t.Errorf("outer product = %v, want %v", got.AsFloat32(), want)
	}
}

func TestBroadcastMismatchPanics(t *testing.T) {
	be := newTestBackend()
	a := fromFloat32(t, make([]float32, 6), tensor.Shape{2, 3})
	b := fromFloat32(t, make([]float32, 8), tensor.Shape{2, 4})

	defer func() {
		if recover() == nil {
			t.Error("Add with incompatible shapes did not panic")
		}
	}()
	be.Add(a, b)
}

func TestDTypeMismatchPanics(t *testing.T) {
	be := newTestBackend()
	a := fromFloat32(t, []float32{1}, tensor.Shape{1})
	b, _ := tensor.NewRaw(tensor.Shape{1}, tensor.Int32, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Error("Add with mixed dtypes did not panic")
		}
	}()
	be.Add(a, b)
}

func TestInt64Arithmetic(t *testing.T) {
	be := newTestBackend()
	raw := func(vals []int64) *tensor.RawTensor {
		r, _ := tensor.NewRaw(tensor.Shape{len(vals)}, tensor.Int64, tensor.CPU)
		copy(r.AsInt64(), vals)
		return r
	}

	got := be.Mul(raw([]int64{2, 3}), raw([]int64{4, 5}))
	if v := got.AsInt64(); v[0] != 8 || v[1] != 15 {
		t.Errorf("int64 Mul = %v, want [8 15]", v)
	}
}

func TestScalarOps(t *testing.T) {
	be := newTestBackend()
	x := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	if got := be.AddScalar(x, 10).AsFloat32(); !float32Close(got, []float32{11, 12, 13}) {
		t.Errorf("AddScalar = %v", got)
	}
	if got := be.MulScalar(x, 2).AsFloat32(); !float32Close(got, []float32{2, 4, 6}) {
		t.Errorf("MulScalar = %v", got)
	}
	if got := be.PowScalar(x, 2).AsFloat32(); !float32Close(got, []float32{1, 4, 9}) {
		t.Errorf("PowScalar = %v", got)
	}
	if got := be.Neg(x).AsFloat32(); !float32Close(got, []float32{-1, -2, -3}) {
		t.Errorf("Neg = %v", got)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	par := NewWithPool(parallel.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1})
	seq := NewWithPool(parallel.Sequential())

	n := 10_000
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i) * 0.25
	}
	shape := tensor.Shape{n}

	a1 := fromFloat32(t, data, shape)
	b1 := fromFloat32(t, data, shape)
	a2 := fromFloat32(t, data, shape)
	b2 := fromFloat32(t, data, shape)

	got := par.Add(a1, b1)
	want := seq.Add(a2, b2)
	if !float32Close(got.AsFloat32(), want.AsFloat32()) {
		t.Error("parallel Add disagrees with sequential Add")
	}
}
