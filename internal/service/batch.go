package service

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// runBatch runs item for every index with at most workers goroutines. Each
// goroutine writes only its own slot, so results keep input order. item must
// record its own failure in its result; runBatch never fails as a whole.
func runBatch[T any](ctx context.Context, n, workers int, item func(ctx context.Context, i int) T) []T {
	results := make([]T, n)
	if n == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, n))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i] = item(gctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// tally counts successes in a result slice.
func tally[T any](results []T, ok func(T) bool) (success, failed int) {
	for _, r := range results {
		if ok(r) {
			success++
		} else {
			failed++
		}
	}
	return success, failed
}
