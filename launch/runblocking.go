package launch

import (
	"context"

	"github.com/ygrebnov/job"
)

// runBlockingDispatcher queues dispatched bodies instead of running them on
// a new goroutine. It adapts the teacher's fifo.go single-goroutine executor
// by moving the draining loop from a background goroutine onto whichever
// goroutine calls drain — for RunBlocking, the caller of RunBlocking itself.
type runBlockingDispatcher struct {
	tasks chan func()
}

func newRunBlockingDispatcher(buffer int) *runBlockingDispatcher {
	return &runBlockingDispatcher{tasks: make(chan func(), buffer)}
}

func (d *runBlockingDispatcher) Dispatch(_ context.Context, fn func()) {
	d.tasks <- fn
}

// drain runs queued bodies in FIFO order until done is closed, then flushes
// whatever else is already queued without blocking.
func (d *runBlockingDispatcher) drain(done <-chan struct{}) {
	for {
		select {
		case <-done:
			for {
				select {
				case fn := <-d.tasks:
					fn()
				default:
					return
				}
			}
		case fn := <-d.tasks:
			fn()
		}
	}
}

// RunBlocking starts body on a FIFO queue drained synchronously on the
// calling goroutine (spec.md §2's "blocking top-level entry point that
// drives a queue on the caller's thread") and blocks until it completes,
// returning its result. Any dispatcher passed via WithDispatcher is ignored:
// the root body always runs on the caller's goroutine. Jobs launched from
// inside body (Launch, Async) use their own dispatcher option, which
// defaults to dispatcher.Goroutine(), so they run off the caller's goroutine.
func RunBlocking[T any](ctx context.Context, body func(context.Context) (T, error), opts ...Option) (T, error) {
	cfg := resolve(opts)

	d := newRunBlockingDispatcher(1024)
	cfg.dispatcher = d

	var j *job.AbstractJob[T]
	deliverToContextHandler := job.WithJobExceptionHandler(func(hctx context.Context, err error) bool {
		h, ok := job.ExceptionHandlerFromContext(hctx)
		if !ok {
			return false
		}
		h(hctx, j, err)
		return true
	})
	rootOpts := append([]job.Option{deliverToContextHandler}, cfg.jobOpts...)

	j, jctx := job.New[T](ctx, rootOpts...)

	resultCh := make(chan job.Result[T], 1)
	done := make(chan struct{})
	j.InvokeOnCompletion(func(r job.Result[T]) {
		resultCh <- r
		close(done)
	})

	d.Dispatch(jctx, func() {
		v, err := body(jctx)
		if err != nil {
			_ = j.ResumeWith(job.Failure[T](err))
			return
		}
		_ = j.ResumeWith(job.Success(v))
	})

	d.drain(done)

	return (<-resultCh).Unpack()
}
