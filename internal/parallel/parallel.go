// Package parallel provides the worker helpers the CPU backend uses to
// spread large kernels across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work is split across goroutines.
type Config struct {
	Enabled      bool // run work concurrently at all
	NumWorkers   int  // goroutines to fan out to
	MinChunkSize int  // below this many items, stay sequential
}

// DefaultConfig sizes the pool to the machine's CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1024,
	}
}

// Sequential returns a config that always runs on the calling goroutine.
// Useful in tests and for small problem sizes.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For runs f(i) for every i in [0, n), fanning out across workers when
// the config allows and n is large enough to pay for the goroutines.
func For(n int, cfg Config, f func(i int)) {
	ForRange(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	})
}

// ForRange runs f over contiguous index ranges covering [0, n).
// Kernels that iterate a flat slice should prefer this over For: the
// per-range call keeps the hot loop free of closure dispatch.
func ForRange(n int, cfg Config, f func(start, end int)) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		f(0, n)
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForBatch runs f(b, c) over a batch*channels grid, the iteration pattern
// of convolution and pooling kernels.
func ForBatch(batch, channels int, cfg Config, f func(b, c int)) {
	For(batch*channels, cfg, func(k int) {
		f(k/channels, k%channels)
	})
}
