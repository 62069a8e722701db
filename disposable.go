package job

// Disposable is an opaque handle whose sole operation cancels a prior
// registration. Dispose is idempotent and safe to call from any thread;
// disposing a handle for a job that has already reached Complete is a
// silent no-op.
type Disposable interface {
	Dispose()
}

// noopDisposable is returned when a callback fired synchronously at
// registration time (late subscriber, or a cancel handler registered after
// Cancelling/Complete): there is nothing left to remove.
type noopDisposable struct{}

func (noopDisposable) Dispose() {}

// completionHandle binds a job to a completion callback. Disposing it
// removes it from the job's pending handler list.
type completionHandle[T any] struct {
	j  *AbstractJob[T]
	fn func(Result[T])
}

func (h *completionHandle[T]) Dispose() { h.j.Remove(h) }

// cancelHandle binds a job to a cancel callback. Disposing it removes it
// from the job's pending handler list.
type cancelHandle[T any] struct {
	j  *AbstractJob[T]
	fn func()
}

func (h *cancelHandle[T]) Dispose() { h.j.Remove(h) }

// disposableList is an immutable singly-linked list of disposable handles,
// cons'd onto the front as handlers are registered. It is never mutated in
// place: remove returns a new list so that a fan-out snapshot captured at a
// terminal transition is safe from concurrent removals on newer states.
type disposableList[T any] struct {
	head Disposable
	tail *disposableList[T]
}

// cons prepends d to list in O(1).
func cons[T any](d Disposable, list *disposableList[T]) *disposableList[T] {
	return &disposableList[T]{head: d, tail: list}
}

// removeDisposable returns a new list with the first structural occurrence
// of d omitted (identity comparison). If d is absent, the original list
// value is returned unchanged (same pointer), so callers can cheaply detect
// a no-op removal.
func removeDisposable[T any](list *disposableList[T], d Disposable) *disposableList[T] {
	if list == nil {
		return nil
	}
	if list.head == d {
		return list.tail
	}
	rest := removeDisposable(list.tail, d)
	if rest == list.tail {
		return list
	}
	return cons[T](list.head, rest)
}

// forEachCompletion invokes every completion handler in list, head to tail,
// with result. Cancel handlers in the same list are skipped.
func forEachCompletion[T any](list *disposableList[T], result Result[T]) {
	for n := list; n != nil; n = n.tail {
		if ch, ok := n.head.(*completionHandle[T]); ok {
			ch.fn(result)
		}
	}
}

// forEachCancel invokes every cancel handler in list, head to tail.
// Completion handlers in the same list are skipped.
func forEachCancel[T any](list *disposableList[T]) {
	for n := list; n != nil; n = n.tail {
		if ch, ok := n.head.(*cancelHandle[T]); ok {
			ch.fn()
		}
	}
}
