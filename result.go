package job

// Result is the sum of Success(T) and Failure(error) a job's body resumes
// with. Exactly one of the two constructors should be used to build a
// value; reading Err on a successful Result returns nil.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Success builds a Result carrying a successful value.
func Success[T any](v T) Result[T] { return Result[T]{value: v, ok: true} }

// Failure builds a Result carrying a failure. Passing a nil err still
// produces a failing Result with a nil error; callers should not do this.
func Failure[T any](err error) Result[T] { return Result[T]{err: err, ok: false} }

// IsSuccess reports whether the result is a Success.
func (r Result[T]) IsSuccess() bool { return r.ok }

// Value returns the stored value and true if the result is a Success;
// otherwise the zero value of T and false.
func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

// Err returns the stored error, or nil if the result is a Success.
func (r Result[T]) Err() error { return r.err }

// Unpack returns (value, error) in the conventional Go shape.
func (r Result[T]) Unpack() (T, error) { return r.value, r.err }
