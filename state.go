package job

// stateKind tags which variant of the sealed coroutineState sum a given
// value represents.
type stateKind int

const (
	stateIncomplete stateKind = iota
	stateCancelling
	stateComplete
)

// coroutineState is the sealed lifecycle state of a job. Every variant
// carries the disposableList pending at that point; Complete additionally
// carries the terminal value/error. A coroutineState value is never
// mutated after construction — every transition builds a fresh candidate,
// per the CAS update-loop protocol in job.go.
type coroutineState[T any] struct {
	kind  stateKind
	list  *disposableList[T]
	value *T
	err   error
}

// newIncompleteState builds the initial state of a freshly constructed job.
func newIncompleteState[T any]() *coroutineState[T] {
	return &coroutineState[T]{kind: stateIncomplete}
}

// toCancelling builds a Cancelling candidate from an Incomplete state,
// inheriting its disposableList via from(prev) (spec.md §4.2 step 1).
func (s *coroutineState[T]) toCancelling() *coroutineState[T] {
	return &coroutineState[T]{kind: stateCancelling, list: s.list}
}

// toComplete builds a terminal candidate. Exactly one of value/err should
// be non-nil, except for the cancelled-then-completed case where err is a
// *CancelledError and value is nil. The handler list is cleared: new
// registrations against a Complete state fire immediately instead of being
// queued (spec.md §3, §4.2).
func toComplete[T any](value *T, err error) *coroutineState[T] {
	return &coroutineState[T]{kind: stateComplete, value: value, err: err}
}

// withDisposable returns a candidate with d added to the pending list.
func (s *coroutineState[T]) withDisposable(d Disposable) *coroutineState[T] {
	return &coroutineState[T]{kind: s.kind, list: cons[T](d, s.list), value: s.value, err: s.err}
}

// withoutDisposable returns a candidate with d structurally removed from
// the pending list. If d was not present, the returned state's list field
// is the same pointer as s.list, letting callers detect a no-op.
func (s *coroutineState[T]) withoutDisposable(d Disposable) *coroutineState[T] {
	return &coroutineState[T]{kind: s.kind, list: removeDisposable(s.list, d), value: s.value, err: s.err}
}

func (s *coroutineState[T]) isIncomplete() bool { return s.kind == stateIncomplete }
func (s *coroutineState[T]) isCancelling() bool { return s.kind == stateCancelling }
func (s *coroutineState[T]) isComplete() bool   { return s.kind == stateComplete }

// reconstructResult rebuilds the Result a late subscriber observes from a
// Complete state's stored (value, error) pair.
func reconstructResult[T any](s *coroutineState[T]) (Result[T], error) {
	switch {
	case s.err != nil:
		return Failure[T](s.err), nil
	case s.value != nil:
		return Success(*s.value), nil
	default:
		return Result[T]{}, ErrIllegalTerminalState
	}
}
