package dispatcher

import "context"

// goroutineDispatcher dispatches every body on its own goroutine. It never
// tracks in-flight work itself; callers that need to wait for completion do
// so through the job's own Join, not through this dispatcher.
type goroutineDispatcher struct{}

// Goroutine returns the default Dispatcher: unbounded, one goroutine per
// Dispatch call.
func Goroutine() Dispatcher { return goroutineDispatcher{} }

func (goroutineDispatcher) Dispatch(_ context.Context, fn func()) {
	go fn()
}
