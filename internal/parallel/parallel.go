// Package parallel provides chunked parallel iteration used by the larger
// elementwise kernels.
package parallel

import (
	"runtime"
	"sync"
)

// minChunkSize is the smallest per-goroutine slice of work worth the
// scheduling overhead. Loops below this run sequentially.
const minChunkSize = 4096

var numWorkers = runtime.NumCPU()

// For executes f(i) for i in [0, n), splitting the range across worker
// goroutines when n is large enough to amortize the overhead.
// f must be safe to call concurrently for distinct i.
func For(n int, f func(i int)) {
	if numWorkers <= 1 || n < minChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + numWorkers - 1) / numWorkers
	if chunk < minChunkSize {
		chunk = minChunkSize
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
