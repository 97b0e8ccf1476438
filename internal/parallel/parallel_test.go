package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversAllIndices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 1 // force the parallel path even for small n

	n := 1000
	var counter int64
	For(n, cfg, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	if counter != int64(n) {
		t.Errorf("ran %d iterations, want %d", counter, n)
	}
}

func TestForRangeCoversAllIndices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 8

	n := 1003 // deliberately not a multiple of any chunk size
	seen := make([]int32, n)
	ForRange(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, count := range seen {
		if count != 1 {
			t.Fatalf("index %d visited %d times, want exactly once", i, count)
		}
	}
}

func TestForSequentialFallback(t *testing.T) {
	var counter int64
	For(100, Sequential(), func(_ int) {
		counter++ // no atomics needed: must run on the calling goroutine
	})

	if counter != 100 {
		t.Errorf("ran %d iterations, want 100", counter)
	}
}

func TestForSmallNStaysSequential(t *testing.T) {
	cfg := DefaultConfig()
	n := cfg.MinChunkSize - 1

	var counter int64
	For(n, cfg, func(_ int) {
		counter++
	})

	if counter != int64(n) {
		t.Errorf("ran %d iterations, want %d", counter, n)
	}
}

func TestForBatchVisitsFullGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 1

	batch, channels := 4, 8
	var visited [4][8]int32
	ForBatch(batch, channels, cfg, func(b, c int) {
		atomic.AddInt32(&visited[b][c], 1)
	})

	for b := 0; b < batch; b++ {
		for c := 0; c < channels; c++ {
			if visited[b][c] != 1 {
				t.Errorf("cell [%d][%d] visited %d times", b, c, visited[b][c])
			}
		}
	}
}

func BenchmarkForRange(b *testing.B) {
	n := 1 << 16
	data := make([]float64, n)

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			ForRange(n, cfg, func(start, end int) {
				for j := start; j < end; j++ {
					data[j] = float64(j) * 1.5
				}
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(n, Sequential(), func(start, end int) {
				for j := start; j < end; j++ {
					data[j] = float64(j) * 1.5
				}
			})
		}
	})
}
