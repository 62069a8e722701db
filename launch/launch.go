package launch

import (
	"context"

	"github.com/ygrebnov/job"
)

// Launch starts body on the configured dispatcher and returns its job.Job
// handle immediately, without waiting for completion (spec.md §2's
// result-less launcher variant). If ctx carries a parent job (job.FromContext),
// the new job is linked to it: the parent cancels it on the parent's own
// cancellation, and an unhandled error from body propagates up the parent
// chain per job.Job's exception-propagation contract.
func Launch(ctx context.Context, body func(context.Context) error, opts ...Option) job.Job {
	cfg := resolve(opts)

	j, jctx := job.New[struct{}](ctx, cfg.jobOpts...)

	cfg.dispatcher.Dispatch(jctx, func() {
		if err := body(jctx); err != nil {
			_ = j.ResumeWith(job.Failure[struct{}](err))
			return
		}
		_ = j.ResumeWith(job.Success(struct{}{}))
	})

	return j
}

// Deferred is the handle returned by Async: a job.Job that also yields a
// typed result once complete.
type Deferred[T any] struct {
	job.Job

	j        *job.AbstractJob[T]
	resultCh chan job.Result[T]
}

// Await blocks until the deferred job completes, then returns its result.
// It fails with a *job.CancelledError if ctx is cancelled first, or if the
// job's own Join contract reports a dead parent (see job.AbstractJob.Join).
func (d Deferred[T]) Await(ctx context.Context) (T, error) {
	if err := d.j.Join(ctx); err != nil {
		var zero T
		return zero, err
	}
	return (<-d.resultCh).Unpack()
}

// Async starts body on the configured dispatcher and returns a Deferred[T]
// handle (spec.md §2's result-returning launcher variant).
func Async[T any](ctx context.Context, body func(context.Context) (T, error), opts ...Option) Deferred[T] {
	cfg := resolve(opts)

	j, jctx := job.New[T](ctx, cfg.jobOpts...)

	resultCh := make(chan job.Result[T], 1)
	j.InvokeOnCompletion(func(r job.Result[T]) { resultCh <- r })

	cfg.dispatcher.Dispatch(jctx, func() {
		v, err := body(jctx)
		if err != nil {
			_ = j.ResumeWith(job.Failure[T](err))
			return
		}
		_ = j.ResumeWith(job.Success(v))
	})

	return Deferred[T]{Job: j, j: j, resultCh: resultCh}
}
