package dsk

import (
	"sync/atomic"

	"github.com/go-dsk/dsk/errs"
)

// Continuation is a one-shot, movable "thing to run next". It wraps either
// nothing (the zero value), or an owned zero-argument callable. Go has no
// coroutine-handle/symmetric-transfer primitive, so unlike the continuation
// described in spec.md §4.2, a Continuation here never carries a suspended
// call stack — only a callback.
//
// A Continuation must be invoked at most once. Resuming an already-resumed
// Continuation is a programming error and panics, matching §7's "hard
// invariants ... are programming errors and abort the process".
type Continuation struct {
	fn   func()
	done atomic.Bool
}

// NewContinuation wraps fn as a Continuation. fn must not be nil.
func NewContinuation(fn func()) Continuation {
	if fn == nil {
		panic("dsk: NewContinuation called with nil func")
	}
	return Continuation{fn: fn}
}

// Valid reports whether the Continuation holds a callable that has not yet
// been resumed.
func (c *Continuation) Valid() bool {
	return c.fn != nil && !c.done.Load()
}

// Resume invokes the stored callable. It panics if the Continuation is
// empty or has already been resumed once.
func (c *Continuation) Resume() {
	if c.fn == nil {
		panic("dsk: Resume called on an empty Continuation")
	}
	if !c.done.CompareAndSwap(false, true) {
		panic(errs.ErrContinuationReuse)
	}
	c.fn()
}

// resumerAwareContinuation wraps a (resumer, continuation) pair so that
// invoking it posts the continuation through the resumer instead of running
// it inline. This is how ResumeOn is implemented without modifying the
// underlying op — see combinators.go.
func resumerAwareContinuation(r Resumer, cont Continuation) Continuation {
	return NewContinuation(func() {
		r.Post(cont)
	})
}
