// Package parallel provides chunked goroutine fan-out for embarrassingly
// parallel loops over index ranges.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across the available CPU cores and executes fn
// for each (start, end) chunk in parallel.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items // no need for more workers than items
	}

	// Ceiling division so every item lands in exactly one chunk.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold parallelizes only when items exceeds threshold;
// below it the loop runs sequentially to avoid goroutine overhead.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
