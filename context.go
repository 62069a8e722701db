package job

import "context"

// contextKey namespaces this package's context keys so they never collide
// with a caller's own key type, the way context keys are conventionally
// scoped in Go.
type contextKey int

const (
	jobContextKey contextKey = iota
	nameContextKey
	exceptionHandlerContextKey
)

// Job is the non-generic projection of AbstractJob used for parent/child
// linking: a child only ever needs to cancel its parent, subscribe to its
// cancellation, and ask whether it is still active. It deliberately omits
// InvokeOnCompletion, which is generic over the job's result type and is
// only meaningful to a caller holding the concrete *AbstractJob[T].
//
// handleChildException is unexported: AbstractJob[T] is the sole
// implementation, for any T, within this package.
type Job interface {
	// Cancel requests cancellation; see AbstractJob.Cancel.
	Cancel()
	// IsActive reports whether the job is Incomplete (neither cancelling
	// nor complete).
	IsActive() bool
	// IsCompleted reports whether the job has reached Complete.
	IsCompleted() bool
	// InvokeOnCancel registers a cancel callback; see AbstractJob.InvokeOnCancel.
	InvokeOnCancel(cb func()) Disposable
	// Remove disposes a handle previously returned by this job.
	Remove(d Disposable)
	// String renders a diagnostic name, using the context Name element if set.
	String() string

	handleChildException(err error) bool
}

// withJob returns a context carrying j as the job a child constructed from
// it should discover as its parent. This is the "self re-inserted as a
// context element" step of spec.md §3/§4.3, performed by New right after
// the parent-cancel subscription is registered.
func withJob(ctx context.Context, j Job) context.Context {
	return context.WithValue(ctx, jobContextKey, j)
}

// FromContext returns the nearest enclosing Job stored in ctx, if any.
func FromContext(ctx context.Context) (Job, bool) {
	j, ok := ctx.Value(jobContextKey).(Job)
	return j, ok
}

// WithName attaches a diagnostic name to ctx. It is opaque to the job
// engine: the only consumer is AbstractJob.String.
func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, nameContextKey, name)
}

// NameFromContext returns the name attached via WithName, if any.
func NameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(nameContextKey).(string)
	return name, ok
}

// ExceptionHandler receives an error that reached the root of a job
// hierarchy without being handled by any handleChildException override.
type ExceptionHandler func(ctx context.Context, j Job, err error)

// WithExceptionHandler attaches h to ctx. Only a job variant whose
// handleJobException override consults ExceptionHandlerFromContext will
// ever invoke it (see launch.RunBlocking); AbstractJob's own default
// handleJobException ignores it.
func WithExceptionHandler(ctx context.Context, h ExceptionHandler) context.Context {
	return context.WithValue(ctx, exceptionHandlerContextKey, h)
}

// ExceptionHandlerFromContext returns the handler attached via
// WithExceptionHandler, if any.
func ExceptionHandlerFromContext(ctx context.Context) (ExceptionHandler, bool) {
	h, ok := ctx.Value(exceptionHandlerContextKey).(ExceptionHandler)
	return h, ok
}
