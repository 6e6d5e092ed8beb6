// Package errs is the core error taxonomy shared by every async op in this
// module (spec.md §7). It is grounded on the teacher's own errors.go
// (ygrebnov-workers): namespaced sentinel errors checked with errors.Is,
// plus a tagged-error type (error_tagging.go's TaskMetaError) used to
// correlate a failure back to the op that produced it.
package errs

import (
	"errors"
	"fmt"
)

// Namespace prefixes every sentinel error message, mirroring the teacher's
// Namespace constant.
const Namespace = "dsk"

// Kind classifies an error the way spec.md §7 enumerates kinds, not types:
// every collaborator translates its own domain errors into one of these via
// a per-category translation table (e.g. dsks3's classifyS3Error-style
// function).
type Kind int

const (
	// KindUnknown is the zero value; never produced deliberately.
	KindUnknown Kind = iota
	// KindCanceled: a stop was requested and the op bailed.
	KindCanceled
	// KindParseFailed: input-side syntactic error.
	KindParseFailed
	// KindInputNotFullyConsumed: trailing input remained after a parse.
	KindInputNotFullyConsumed
	// KindOutOfBound: index/range violation.
	KindOutOfBound
	// KindInvalidInput: semantic rejection of otherwise well-formed input.
	KindInvalidInput
	// KindNotFound: the requested key/row/document/object does not exist.
	KindNotFound
	// KindUnavailable: the remote collaborator is unreachable or refused
	// the call (connection refused, timeout, no healthy endpoint).
	KindUnavailable
	// KindDomain: a collaborator-specific error re-surfaced under this
	// taxonomy (SQLite/curl/gRPC codes, etc).
	KindDomain
)

func (k Kind) String() string {
	switch k {
	case KindCanceled:
		return "canceled"
	case KindParseFailed:
		return "parse_failed"
	case KindInputNotFullyConsumed:
		return "input_not_fully_consumed"
	case KindOutOfBound:
		return "out_of_bound"
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// KindError pairs a Kind with an underlying error, the way the teacher pairs
// a sentinel error with a namespace prefix.
type KindError struct {
	Kind Kind
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", Namespace, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", Namespace, e.Kind, e.Err)
}

func (e *KindError) Unwrap() error { return e.Err }

// New builds a KindError of the given kind wrapping msg.
func New(kind Kind, msg string) error {
	return &KindError{Kind: kind, Err: errors.New(msg)}
}

// Wrap builds a KindError of the given kind wrapping err. Returns nil if err
// is nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &KindError{Kind: kind, Err: err}
}

// KindOf extracts the Kind from err, if err (or something it wraps) is a
// *KindError. Returns KindUnknown otherwise.
func KindOf(err error) Kind {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return KindUnknown
}

// Is reports whether err is a KindError of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Sentinel errors for the programming-error / hard-invariant cases spec.md
// §7 calls out as fatal rather than recoverable: "double-initiate,
// double-take, post-after-stop are programming errors and abort the
// process." Callers that want to recover from these anyway (e.g. op
// wrappers under test) can recover the panic value, which is one of these
// for double-initiate, double-take and continuation reuse. The schedulers
// package panics with its own message string on post-after-stop, so
// ErrPostAfterStop is not the value recovered there.
var (
	ErrCanceled          = New(KindCanceled, "operation canceled")
	ErrDoubleInitiate    = errors.New(Namespace + ": op initiated more than once")
	ErrDoubleTake        = errors.New(Namespace + ": result taken more than once")
	ErrPostAfterStop     = errors.New(Namespace + ": post called on a stopped scheduler")
	ErrContinuationReuse = errors.New(Namespace + ": continuation resumed more than once")
)

// Panic wraps a recovered panic value into a KindDomain error, matching the
// teacher's task.go / worker.go convention of turning a recovered task
// panic into an error instead of crashing the dispatch goroutine.
func Panic(v any) error {
	return Wrap(KindDomain, fmt.Errorf("panicked: %v", v))
}
