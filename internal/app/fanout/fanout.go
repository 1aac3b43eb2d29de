// Package fanout runs a function over a slice on a bounded number of
// goroutines and collects the results in input order.
//
// The data portal cascades actions into sibling children with Each; the
// service and the records API store batch calls with Run.
package fanout

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result is the outcome for one item: Value when Err is nil.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for every item with at most limit calls in flight (at
// least one) and returns the results in item order. It waits for every
// started call. Items still queued when ctx ends get ctx's error without
// calling fn; fn itself decides how to honor ctx.
func Run[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	sem := semaphore.NewWeighted(int64(max(limit, 1)))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Go(func() {
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i].Err = err
				return
			}
			defer sem.Release(1)
			results[i].Value, results[i].Err = fn(ctx, item)
		})
	}
	wg.Wait()
	return results
}

// Each is Run for calls without a value. It returns the first error in
// item order after every call finished.
func Each[T any](ctx context.Context, limit int, items []T, fn func(context.Context, T) error) error {
	return FirstError(Run(ctx, limit, items, func(ctx context.Context, it T) (struct{}, error) {
		return struct{}{}, fn(ctx, it)
	}))
}

// FirstError returns the error of the earliest failed result.
func FirstError[R any](results []Result[R]) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
