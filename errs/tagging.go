package errs

import (
	"errors"
	"fmt"
)

// OpMetaError exposes correlation metadata for an op failure — which op, and
// optionally which index in a batch, produced the error. Grounded verbatim
// on the teacher's TaskMetaError (ygrebnov-workers/error_tagging.go),
// renamed from the task-pool domain to the op domain.
type OpMetaError interface {
	error
	Unwrap() error
	OpID() (any, bool)
	OpIndex() (int, bool)
}

type taggedError struct {
	err   error
	id    any
	index int
}

// Tag wraps err with correlation metadata identifying which op (and,
// optionally, which index within a batch — e.g. an [dsk.OpGroup] member)
// produced it. Returns nil if err is nil.
func Tag(err error, id any, index int) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, id: id, index: index}
}

func (e *taggedError) Error() string { return e.err.Error() }
func (e *taggedError) Unwrap() error { return e.err }

func (e *taggedError) OpID() (any, bool) {
	if e.id == nil {
		return nil, false
	}
	return e.id, true
}

func (e *taggedError) OpIndex() (int, bool) { return e.index, true }

func (e *taggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "op(index=%d,id=%v): %+v", e.index, e.id, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractOpID returns the op ID from err if present.
func ExtractOpID(err error) (any, bool) {
	var tme OpMetaError
	if errors.As(err, &tme) {
		return tme.OpID()
	}
	return nil, false
}

// ExtractOpIndex returns the op index from err if present.
func ExtractOpIndex(err error) (int, bool) {
	var tme OpMetaError
	if errors.As(err, &tme) {
		return tme.OpIndex()
	}
	return 0, false
}
