package job

import (
	"errors"
	"fmt"
)

// JobError exposes the job a failure originated from, for correlation when
// an error has propagated past the job hierarchy to a top-level handler.
type JobError interface {
	error
	Unwrap() error
	JobName() (string, bool)
}

type taggedError struct {
	err  error
	name string
}

// tagError wraps err with the job's diagnostic name, unless err is nil or
// already tagged (the first tag — the originating job's — is kept).
func tagError(err error, name string) error {
	if err == nil {
		return nil
	}
	var existing JobError
	if errors.As(err, &existing) {
		return err
	}
	return &taggedError{err: err, name: name}
}

func (e *taggedError) Error() string { return e.err.Error() }
func (e *taggedError) Unwrap() error  { return e.err }

func (e *taggedError) JobName() (string, bool) {
	if e.name == "" {
		return "", false
	}
	return e.name, true
}

func (e *taggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "job(%s): %+v", e.name, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractJobName returns the name of the job err originated from, if the
// error (or one it wraps) was tagged via tagError.
func ExtractJobName(err error) (string, bool) {
	var je JobError
	if errors.As(err, &je) {
		return je.JobName()
	}
	return "", false
}
