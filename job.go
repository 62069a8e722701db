package job

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// AbstractJob is the lock-free engine behind every coroutine-like task in
// this runtime. It owns an atomically-updated CoroutineState, a parent
// reference discovered from its construction context, and the disposable
// that unsubscribes it from the parent's cancellation.
//
// Every public method is safe to call concurrently from any goroutine; the
// state cell is the sole synchronization point. Side effects visible to
// callers (handler dispatch, parent-subscription disposal) run strictly
// after a winning compare-and-swap, never inside the retry loop.
type AbstractJob[T any] struct {
	state atomic.Pointer[coroutineState[T]]

	ctx    context.Context
	parent Job

	disposeSubOnce  sync.Once
	parentCancelSub Disposable

	metrics    MetricsProvider
	startedAt  time.Time
	onUnhandledException func(ctx context.Context, err error) bool
}

// New constructs a job in the Incomplete state. If ctx carries a parent Job
// (see FromContext), the new job subscribes to the parent's cancellation as
// the last step of construction and re-inserts itself into the returned
// context so jobs constructed from it discover it as their parent.
func New[T any](ctx context.Context, opts ...Option) (*AbstractJob[T], context.Context) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	j := &AbstractJob[T]{
		metrics:              cfg.metrics,
		onUnhandledException: cfg.onUnhandledException,
		startedAt:            time.Now(),
	}
	j.state.Store(newIncompleteState[T]())

	if parent, ok := FromContext(ctx); ok {
		j.parent = parent
		j.parentCancelSub = parent.InvokeOnCancel(func() { j.Cancel() })
	}

	jobCtx := withJob(ctx, j)
	j.ctx = jobCtx

	if j.metrics != nil {
		j.metrics.UpDownCounter("jobs_active").Add(1)
	}

	return j, jobCtx
}

// ResumeWith is the producer-side terminal transition (spec.md §4.3.1).
//
// From Incomplete, the job completes with result verbatim. From
// Cancelling, the job completes with a CancelledError regardless of
// result — a cancelled job always terminates with a cancellation error
// even if its body finished normally afterwards. From Complete,
// ResumeWith fails with ErrAlreadyCompleted.
//
// Registered completion handlers always observe the original result
// passed here, even in the cancelled-then-resumed case where the stored
// state carries a cancellation error instead.
func (j *AbstractJob[T]) ResumeWith(result Result[T]) error {
	for {
		prev := j.state.Load()

		var candidate *coroutineState[T]
		switch prev.kind {
		case stateComplete:
			return ErrAlreadyCompleted
		case stateCancelling:
			candidate = toComplete[T](nil, NewCancelledError("Result arrived, but cancelled already.", nil))
		default: // stateIncomplete
			if v, ok := result.Value(); ok {
				vv := v
				candidate = toComplete[T](&vv, nil)
			} else {
				candidate = toComplete[T](nil, result.Err())
			}
		}

		if !j.state.CompareAndSwap(prev, candidate) {
			continue
		}

		if candidate.err != nil && !IsCancelled(candidate.err) {
			j.tryHandleException(candidate.err)
		}

		forEachCompletion(prev.list, result)
		j.disposeParentSubscription()
		j.recordTerminalMetrics(prev.kind, candidate)
		return nil
	}
}

// Cancel requests cancellation (spec.md §4.3.2). From Incomplete it
// transitions to Cancelling and synchronously invokes every registered
// cancel handler. From Cancelling or Complete it is a no-op.
func (j *AbstractJob[T]) Cancel() {
	for {
		prev := j.state.Load()
		if !prev.isIncomplete() {
			return
		}

		candidate := prev.toCancelling()
		if !j.state.CompareAndSwap(prev, candidate) {
			continue
		}

		forEachCancel(candidate.list)
		j.disposeParentSubscription()
		if j.metrics != nil {
			j.metrics.Counter("jobs_cancel_requested_total").Add(1)
			// The job leaves Incomplete here, not when it eventually reaches
			// Complete; recordTerminalMetrics skips this decrement for a job
			// that passed through Cancelling so it isn't double-counted.
			j.metrics.UpDownCounter("jobs_active").Add(-1)
		}
		return
	}
}

// InvokeOnCompletion registers cb to run once the job reaches Complete
// (spec.md §4.3.3). If the job is already Complete, cb is invoked
// immediately and synchronously with a Result reconstructed from the
// stored (value, error), and the returned Disposable is a no-op.
func (j *AbstractJob[T]) InvokeOnCompletion(cb func(Result[T])) Disposable {
	for {
		prev := j.state.Load()
		if prev.isComplete() {
			result, err := reconstructResult(prev)
			if err != nil {
				result = Failure[T](err)
			}
			cb(result)
			return noopDisposable{}
		}

		h := &completionHandle[T]{j: j, fn: cb}
		candidate := prev.withDisposable(h)
		if j.state.CompareAndSwap(prev, candidate) {
			return h
		}
	}
}

// InvokeOnCancel registers cb to run when the job reaches Cancelling
// (spec.md §4.3.4). If the job is already Cancelling or Complete, cb is
// invoked immediately and the returned Disposable is a no-op — including
// the case of a job that completed normally without ever being cancelled;
// this is the documented, intentionally preserved behavior (spec.md §9
// Open Questions).
func (j *AbstractJob[T]) InvokeOnCancel(cb func()) Disposable {
	for {
		prev := j.state.Load()
		if prev.isCancelling() || prev.isComplete() {
			cb()
			return noopDisposable{}
		}

		h := &cancelHandle[T]{j: j, fn: cb}
		candidate := prev.withDisposable(h)
		if j.state.CompareAndSwap(prev, candidate) {
			return h
		}
	}
}

// Remove idempotently removes d from the current pending list. It is a
// no-op once the job is Complete (spec.md §4.3.5).
func (j *AbstractJob[T]) Remove(d Disposable) {
	for {
		prev := j.state.Load()
		if prev.isComplete() {
			return
		}

		candidate := prev.withoutDisposable(d)
		if candidate.list == prev.list {
			return // d was not present; nothing to swap
		}
		if j.state.CompareAndSwap(prev, candidate) {
			return
		}
	}
}

// Join suspends the caller until the job completes (spec.md §4.3.6). If
// the job is already Complete and its parent has since become inactive,
// Join fails with a CancelledError ("Parent cancelled."). If ctx is
// cancelled while Join is waiting, the registered completion handler is
// disposed and Join fails with a CancelledError without affecting the
// awaited job.
func (j *AbstractJob[T]) Join(ctx context.Context) error {
	if j.state.Load().isComplete() {
		return j.checkParentActive()
	}

	done := make(chan struct{})
	handle := j.InvokeOnCompletion(func(Result[T]) { close(done) })

	select {
	case <-done:
		return j.checkParentActive()
	case <-ctx.Done():
		handle.Dispose()
		return NewCancelledError("join cancelled", ctx.Err())
	}
}

func (j *AbstractJob[T]) checkParentActive() error {
	if j.parent != nil && !j.parent.IsActive() {
		return NewCancelledError("Parent cancelled.", nil)
	}
	return nil
}

// IsActive reports whether the job is Incomplete (spec.md §4.3.7): neither
// cancelling nor complete.
func (j *AbstractJob[T]) IsActive() bool { return j.state.Load().isIncomplete() }

// IsCompleted reports whether the job has reached Complete (spec.md §4.3.7).
func (j *AbstractJob[T]) IsCompleted() bool { return j.state.Load().isComplete() }

// String renders a diagnostic name for the job, using the Name context
// element if the job's construction context carried one.
func (j *AbstractJob[T]) String() string {
	if name, ok := NameFromContext(j.ctx); ok {
		return name
	}
	return fmt.Sprintf("Job@%p", j)
}

func (j *AbstractJob[T]) disposeParentSubscription() {
	j.disposeSubOnce.Do(func() {
		if j.parentCancelSub != nil {
			j.parentCancelSub.Dispose()
		}
	})
}

// tryHandleException is invoked from ResumeWith when the terminal error is
// non-nil (spec.md §4.3's "Exception propagation"). A CancelledError is
// never propagated — it is a normal terminal outcome, already accounted
// for by the cancellation path. Otherwise the error is tagged with this
// job's name (see ExtractJobName) and walks up the parent chain via
// handleChildException; if no ancestor's context exception handler
// consumes it, this job's own handleJobException is consulted as the last
// resort.
func (j *AbstractJob[T]) tryHandleException(err error) {
	if IsCancelled(err) {
		return
	}
	err = tagError(err, j.String())

	handled := false
	if j.parent != nil {
		handled = j.parent.handleChildException(err)
	}
	if !handled {
		j.handleJobException(err)
	}
}

// handleChildException is the default propagation step consulted on a
// parent when one of its children fails: it cancels the parent and
// recurses upward to the grandparent. The root of the chain (no parent)
// consults its own handleJobException and returns that result — per
// spec.md §7, a top-level job consumes a descendant's error through its
// context's exception-handler element, returning true when it does.
func (j *AbstractJob[T]) handleChildException(err error) bool {
	j.Cancel()
	if j.parent != nil {
		return j.parent.handleChildException(err)
	}
	return j.handleJobException(err)
}

// handleJobException is the last-resort hook for an error that no
// ancestor's handleChildException consumed. The default implementation
// returns false (unhandled); a top-level job variant overrides this via
// WithJobExceptionHandler to deliver the error to a context-provided
// ExceptionHandler.
func (j *AbstractJob[T]) handleJobException(err error) bool {
	if j.onUnhandledException != nil {
		return j.onUnhandledException(j.ctx, tagError(err, j.String()))
	}
	return false
}

func (j *AbstractJob[T]) recordTerminalMetrics(prevKind stateKind, candidate *coroutineState[T]) {
	if j.metrics == nil {
		return
	}
	// A job that passed through Cancelling already had jobs_active
	// decremented there (see Cancel); only a direct Incomplete -> Complete
	// transition decrements it here, so every job decrements exactly once.
	if prevKind == stateIncomplete {
		j.metrics.UpDownCounter("jobs_active").Add(-1)
	}
	j.metrics.Histogram("job_lifetime_seconds").Record(time.Since(j.startedAt).Seconds())
	if candidate.err != nil && IsCancelled(candidate.err) {
		j.metrics.Counter("jobs_cancelled_total").Add(1)
		return
	}
	j.metrics.Counter("jobs_completed_total").Add(1)
}
