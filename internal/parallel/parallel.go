// Package parallel distributes independent per-triangle jobs across worker
// goroutines. Projection writes are disjoint per triangle, so jobs need no
// locking; the only synchronization is the completion wait.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ForEach invokes fn(i) for every index in [0, n), spread across up to
// workers goroutines. If workers is 0 or negative, GOMAXPROCS is used.
// Indices are handed out through a shared atomic counter so slow jobs do
// not stall a fixed chunk; this balances load when some triangles carry far
// more leaves than others. ForEach returns once every call has completed.
//
// fn must be safe to call concurrently for distinct indices.
func ForEach(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}
