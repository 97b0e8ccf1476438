package tensor

import (
	"math"
	"testing"
)

func TestZerosOnesFull(t *testing.T) {
	be := mockBackend{}

	z := Zeros[float32](Shape{2, 3}, be)
	for _, v := range z.Data() {
		if v != 0 {
			t.Fatal("Zeros produced non-zero element")
		}
	}

	o := Ones[float64](Shape{4}, be)
	for _, v := range o.Data() {
		if v != 1 {
			t.Fatal("Ones produced element != 1")
		}
	}

	f := Full[int32](Shape{3}, 7, be)
	for _, v := range f.Data() {
		if v != 7 {
			t.Fatal("Full produced element != 7")
		}
	}
}

func TestFromSlice(t *testing.T) {
	be := mockBackend{}
	x := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, be)

	if x.At(0, 0) != 1 || x.At(1, 2) != 6 {
		t.Errorf("FromSlice layout wrong: %v", x.Data())
	}

	// Source slice must be copied, not aliased.
	src := []float32{1, 2}
	y := FromSlice(src, Shape{2}, be)
	src[0] = 99
	if y.Data()[0] != 1 {
		t.Error("FromSlice aliased the source slice")
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromSlice with wrong length did not panic")
		}
	}()
	FromSlice([]float32{1, 2, 3}, Shape{2, 2}, mockBackend{})
}

func TestArange(t *testing.T) {
	x := Arange[int32](0, 10, 2, mockBackend{})
	want := []int32{0, 2, 4, 6, 8}

	data := x.Data()
	if len(data) != len(want) {
		t.Fatalf("Arange length = %d, want %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("Arange[%d] = %d, want %d", i, data[i], want[i])
		}
	}
}

func TestEye(t *testing.T) {
	x := Eye[float32](3, mockBackend{})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if got := x.At(i, j); got != want {
				t.Errorf("Eye[%d,%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestRandnMoments(t *testing.T) {
	x := Randn[float64](Shape{10000}, mockBackend{})

	var sum, sumSq float64
	for _, v := range x.Data() {
		sum += v
		sumSq += v * v
	}
	n := float64(x.NumElements())
	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean) > 0.1 {
		t.Errorf("Randn mean = %v, want ~0", mean)
	}
	if math.Abs(variance-1) > 0.1 {
		t.Errorf("Randn variance = %v, want ~1", variance)
	}
}

func TestRandRange(t *testing.T) {
	x := Rand[float32](Shape{1000}, mockBackend{})
	for _, v := range x.Data() {
		if v < 0 || v >= 1 {
			t.Fatalf("Rand produced %v outside [0, 1)", v)
		}
	}
}

func TestRandnIntPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Randn[int32] did not panic")
		}
	}()
	Randn[int32](Shape{2}, mockBackend{})
}
