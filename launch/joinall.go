package launch

import (
	"context"
	"errors"
)

// AsyncAll starts one Async job per item, running fn(ctx, item) on each
// (adapted from the teacher's map.go, which wraps each item into a Task for
// RunAll). It returns the Deferred handles immediately, in input order,
// without waiting for any of them.
func AsyncAll[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error), opts ...Option) []Deferred[R] {
	deferreds := make([]Deferred[R], len(items))
	for i := range items {
		item := items[i]
		deferreds[i] = Async(ctx, func(c context.Context) (R, error) { return fn(c, item) }, opts...)
	}
	return deferreds
}

// JoinAll awaits every Deferred, in input order, and returns their results
// alongside an aggregated error (adapted from the teacher's run_all.go,
// which collects per-task errors with errors.Join). The returned slice has
// the zero value of R wherever the corresponding job failed.
func JoinAll[R any](ctx context.Context, deferreds []Deferred[R]) ([]R, error) {
	results := make([]R, len(deferreds))
	var errs []error
	for i, d := range deferreds {
		v, err := d.Await(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results[i] = v
	}
	return results, errors.Join(errs...)
}
