package dispatcher

import "context"

// Dispatcher resumes a job's body somewhere: on a fresh goroutine, on a
// pooled worker, or (in tests) synchronously. job never depends on this
// package directly; launch wires a Dispatcher to AbstractJob construction
// the way the teacher's Workers wired a pool.Pool to its dispatch loop.
type Dispatcher interface {
	// Dispatch runs fn, honoring ctx for cancellation where the
	// implementation schedules work asynchronously. Dispatch does not
	// block on fn's completion.
	Dispatch(ctx context.Context, fn func())
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, fn func())

func (f DispatcherFunc) Dispatch(ctx context.Context, fn func()) { f(ctx, fn) }
