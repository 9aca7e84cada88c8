package models

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// inlineThreshold is the slice length below which work runs on the
// calling goroutine.
const inlineThreshold = 512

// each calls fn over disjoint [lo, hi) chunks covering [0, n). Chunks run
// in parallel, bounded by GOMAXPROCS, and each returns once all are done.
func each(n int, fn func(lo, hi int)) {
	if n <= inlineThreshold {
		fn(0, n)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	size := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
