package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// MatMul multiplies two 2D tensors: [m, k] x [k, n] -> [m, n].
// Rows of the result are computed in parallel.
func (c *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: requires 2D tensors, got %v and %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v x %v", as, bs))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	out := newRaw(tensor.Shape{as[0], bs[1]}, a.DType(), c.device)

	switch a.DType() {
	case tensor.Float32:
		matmulInto[float32](a, b, out, c.pool)
	case tensor.Float64:
		matmulInto[float64](a, b, out, c.pool)
	case tensor.Int32:
		matmulInto[int32](a, b, out, c.pool)
	case tensor.Int64:
		matmulInto[int64](a, b, out, c.pool)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return out
}

// matmulInto uses the i-l-j loop order: the inner loop walks both b and
// out sequentially, which keeps the kernel cache-friendly without tiling.
func matmulInto[T number](a, b, out *tensor.RawTensor, pool parallel.Config) {
	av, bv, ov := tensor.View[T](a), tensor.View[T](b), tensor.View[T](out)
	m, k := a.Shape()[0], a.Shape()[1]
	n := b.Shape()[1]

	// Each worker owns a disjoint set of output rows.
	rowPool := pool
	rowPool.MinChunkSize = 1
	parallel.ForRange(m, rowPool, func(rowStart, rowEnd int) {
		for i := rowStart; i < rowEnd; i++ {
			outRow := ov[i*n : (i+1)*n]
			for l := 0; l < k; l++ {
				ail := av[i*k+l]
				bRow := bv[l*n : (l+1)*n]
				for j, bj := range bRow {
					outRow[j] += ail * bj
				}
			}
		}
	})
}
