package job

import "errors"

// Namespace prefixes every sentinel error this package declares, matching
// the teacher's practice of namespacing error strings per package.
const Namespace = "job"

var (
	// ErrAlreadyCompleted is returned by ResumeWith when a job has already
	// reached the Complete state. Re-completing a job is a programmer error.
	ErrAlreadyCompleted = errors.New(Namespace + ": already completed")

	// ErrIllegalTerminalState is a defensive error raised when a Complete
	// state carries neither a value nor an error while reconstructing a
	// Result for a late subscriber. This should never happen if ResumeWith
	// is the only producer of terminal states.
	ErrIllegalTerminalState = errors.New(Namespace + ": terminal state has neither value nor error")
)

// CancelledError is the error kind carried by a terminal state reached
// through cancellation. It is never propagated to parent/job exception
// handlers: it is a normal terminal outcome, not a failure.
type CancelledError struct {
	// Message describes why the job was cancelled.
	Message string
	// Cause is the error that triggered cancellation, if any.
	Cause error
}

// NewCancelledError builds a CancelledError with the given message and an
// optional wrapped cause.
func NewCancelledError(message string, cause error) *CancelledError {
	return &CancelledError{Message: message, Cause: cause}
}

func (e *CancelledError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *CancelledError) Unwrap() error { return e.Cause }

// IsCancelled reports whether err is (or wraps) a *CancelledError.
func IsCancelled(err error) bool {
	var ce *CancelledError
	return errors.As(err, &ce)
}
