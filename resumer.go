package dsk

// Resumer is a small, copyable handle used to post a [Continuation] onto a
// [Scheduler]. Every Scheduler yields a Resumer via its Resumer method.
//
// Identity is used for the "am I already on this execution context?"
// fast-path in [Resume] and [RunOn]: if the caller's current Resumer compares
// equal to the destination, the continuation runs inline instead of being
// posted.
type Resumer struct {
	// identity distinguishes resumers bound to different schedulers. The
	// distinguished inline resumer uses a nil identity (the sentinel null
	// from spec.md §3).
	identity *schedulerIdentity
	post     func(Continuation)
}

// schedulerIdentity is an opaque, comparable marker. Schedulers embed one so
// that two Resumers obtained from the same Scheduler compare equal and
// Resumers from different Schedulers never do, regardless of how many times
// Resumer() is called.
type schedulerIdentity struct{ _ byte }

// newResumer builds a Resumer bound to a scheduler identity and post func.
func newResumer(id *schedulerIdentity, post func(Continuation)) Resumer {
	return Resumer{identity: id, post: post}
}

// NewResumer builds a Resumer with a fresh, unique identity around post. It
// is the constructor [Scheduler] implementations outside this package use —
// every call returns a Resumer that compares unequal to every other
// Scheduler's Resumer, and equal to every other Resumer obtained by calling
// this same Scheduler's Resumer method (by convention: call NewResumer once
// per Scheduler instance and cache the result).
func NewResumer(post func(Continuation)) Resumer {
	return newResumer(&schedulerIdentity{}, post)
}

// inlineIdentity is the nil sentinel shared by every inline resumer (and the
// zero-value Resumer), so they all compare equal.
var inlineIdentity *schedulerIdentity

// InlineResumer returns the distinguished resumer that runs continuations
// synchronously on the calling goroutine.
func InlineResumer() Resumer {
	return Resumer{
		identity: inlineIdentity,
		post:     func(c Continuation) { c.Resume() },
	}
}

// Post dispatches cont to this resumer. It is safe to call concurrently,
// including from a continuation currently being run by the same resumer
// (§5 "Thread-safety requirements on resumers").
func (r Resumer) Post(cont Continuation) {
	if r.post == nil {
		// zero-value Resumer behaves like the inline resumer.
		cont.Resume()
		return
	}
	r.post(cont)
}

// Equal reports whether r and other are handles to the same scheduler (or
// both are the inline resumer).
func (r Resumer) Equal(other Resumer) bool {
	return r.identity == other.identity
}

// Resume runs cont on dest, taking the inline fast-path when current already
// equals dest (§4.4): "if source equals destination, invoke the continuation
// inline instead of posting."
func Resume(cont Continuation, dest, current Resumer) {
	if dest.Equal(current) {
		cont.Resume()
		return
	}
	dest.Post(cont)
}
