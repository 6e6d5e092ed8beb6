package dsk

// Ctx is a per-call-tree async context: the current [Resumer], a reference
// to a [StopSource], and a reference to the head of a [CleanupStack] (§3).
// Ctx is immutable by copy — a child context can override the resumer but
// typically shares the stop-source and cleanup stack with its parent.
//
// A Ctx must never outlive the [Task] that created it; this is a documented
// convention (Go has no borrow checker to enforce it), matching the
// acyclic-by-ownership design in spec.md §9.
type Ctx struct {
	resumer Resumer
	stop    *StopSource
	cleanup *CleanupStack
}

// Background returns a root Ctx: the inline resumer, a fresh StopSource, and
// an empty CleanupStack.
func Background() Ctx {
	return Ctx{
		resumer: InlineResumer(),
		stop:    NewStopSource(),
		cleanup: newCleanupStack(),
	}
}

// Resumer returns the context's current resumer.
func (c Ctx) Resumer() Resumer { return c.resumer }

// StopSource returns the context's stop source.
func (c Ctx) StopSource() *StopSource { return c.stop }

// StopToken returns a token observing the context's stop source.
func (c Ctx) StopToken() StopToken { return c.stop.Token() }

// Cleanup returns the context's cleanup stack.
func (c Ctx) Cleanup() *CleanupStack { return c.cleanup }

// WithResumer returns a copy of c bound to a different resumer, sharing the
// same stop source and cleanup stack (make_async_ctx_if<Override>, §4.5).
func (c Ctx) WithResumer(r Resumer) Ctx {
	c.resumer = r
	return c
}

// WithResumerIf conditionally rebinds the resumer: if override is false, c
// is returned unchanged.
func (c Ctx) WithResumerIf(override bool, r Resumer) Ctx {
	if !override {
		return c
	}
	return c.WithResumer(r)
}

// WithStopSource returns a copy of c bound to the stop source s, sharing the
// same resumer and cleanup stack. Unlike [Ctx.Child], s is not linked to c's
// stop source.
func (c Ctx) WithStopSource(s *StopSource) Ctx {
	c.stop = s
	return c
}

// WithCleanup returns a copy of c bound to the cleanup stack cs, sharing the
// same resumer and stop source. [Go] uses it to give each task its own
// cleanup stack.
func (c Ctx) WithCleanup(cs *CleanupStack) Ctx {
	c.cleanup = cs
	return c
}

// Child derives a new Ctx for a nested scope: a fresh cleanup stack, the
// same resumer, and a stop source that is requested whenever the parent's
// is (one-way propagation — the child cannot un-cancel the parent).
func (c Ctx) Child() Ctx {
	child := NewStopSource()
	h := c.stop.OnStop(child.Request)
	_ = h // propagation is one-shot and fire-and-forget; no need to deregister
	return Ctx{resumer: c.resumer, stop: child, cleanup: newCleanupStack()}
}
