package render

import (
	"runtime"
	"sync"
)

// parallelFor executes fn over chunks of [0, n) across up to NumCPU
// workers. Chunks smaller than minChunk run serially.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
