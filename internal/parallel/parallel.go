// Package parallel provides the fork-join fan-out used by the column-wise
// engine passes. Workers receive disjoint index ranges, so callers need no
// locking as long as each range writes only its own output columns.
package parallel

import "golang.org/x/sync/errgroup"

// For splits [0, n) into at most workers contiguous chunks and runs fn on
// each chunk concurrently, waiting for all of them. fn receives a
// half-open range [lo, hi). With workers <= 1 the function runs inline on
// the calling goroutine.
func For(workers, n int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return fn(0, n)
	}

	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
