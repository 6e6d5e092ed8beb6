package dsk

import (
	"context"
	"sync"
)

// StopCallback is invoked at most once, when the owning [StopSource]
// transitions to the requested state — immediately, synchronously, if the
// source is already requested at registration time (§3, §8 property 8).
type StopCallback func()

// stopCallbackHandle lets a caller deregister a callback before it fires.
type stopCallbackHandle struct {
	id     uint64
	source *StopSource
}

// Deregister removes the callback if it has not already fired. It is safe
// to call even after the callback has fired (a no-op in that case).
func (h stopCallbackHandle) Deregister() {
	if h.source == nil {
		return
	}
	h.source.mu.Lock()
	delete(h.source.callbacks, h.id)
	h.source.mu.Unlock()
}

// StopSource is a cooperative-cancellation source. It reaches the requested
// state at most once; that transition is idempotent and atomic (§3, §5).
// The zero value is a valid, never-requested source.
type StopSource struct {
	mu        sync.Mutex
	requested bool
	callbacks map[uint64]StopCallback
	nextID    uint64
	done      chan struct{}
}

// NewStopSource returns a ready-to-use StopSource.
func NewStopSource() *StopSource {
	return &StopSource{done: make(chan struct{})}
}

func (s *StopSource) lazyDone() chan struct{} {
	s.mu.Lock()
	if s.done == nil {
		s.done = make(chan struct{})
		if s.requested {
			close(s.done)
		}
	}
	d := s.done
	s.mu.Unlock()
	return d
}

// Request transitions the source to the requested state. Subsequent calls
// are no-ops. Every registered callback runs exactly once, synchronously,
// from the goroutine that first calls Request.
func (s *StopSource) Request() {
	s.mu.Lock()
	if s.requested {
		s.mu.Unlock()
		return
	}
	s.requested = true
	cbs := make([]StopCallback, 0, len(s.callbacks))
	for _, cb := range s.callbacks {
		cbs = append(cbs, cb)
	}
	s.callbacks = nil
	if s.done != nil {
		close(s.done)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb()
	}
}

// Requested reports whether Request has been called.
func (s *StopSource) Requested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested
}

// OnStop registers cb to run when the source is requested. If the source is
// already requested, cb runs synchronously before OnStop returns (§8
// property 8). The returned handle can deregister cb before it fires.
func (s *StopSource) OnStop(cb StopCallback) stopCallbackHandle {
	s.mu.Lock()
	if s.requested {
		s.mu.Unlock()
		cb()
		return stopCallbackHandle{}
	}
	if s.callbacks == nil {
		s.callbacks = make(map[uint64]StopCallback)
	}
	s.nextID++
	id := s.nextID
	s.callbacks[id] = cb
	s.mu.Unlock()
	return stopCallbackHandle{id: id, source: s}
}

// Token returns a StopToken observing this source.
func (s *StopSource) Token() StopToken {
	return StopToken{source: s}
}

// StopToken observes a [StopSource] without being able to request it.
type StopToken struct {
	source *StopSource
}

// Requested reports whether the underlying source has been requested. A
// zero-value token (no source) is never requested.
func (t StopToken) Requested() bool {
	if t.source == nil {
		return false
	}
	return t.source.Requested()
}

// OnStop registers cb on the underlying source; see StopSource.OnStop.
func (t StopToken) OnStop(cb StopCallback) stopCallbackHandle {
	if t.source == nil {
		return stopCallbackHandle{}
	}
	return t.source.OnStop(cb)
}

// Done returns a channel closed when the underlying source is requested,
// letting a token compose with select statements and context.Context.
func (t StopToken) Done() <-chan struct{} {
	if t.source == nil {
		return nil
	}
	return t.source.lazyDone()
}

// stdContext adapts a StopToken to context.Context for collaborators built
// against the standard library (e.g. database/SDK clients whose calls only
// accept context.Context for cancellation). It is done when either the
// parent context or the stop token fires, whichever comes first.
type stdContext struct {
	context.Context
	token StopToken
	done  chan struct{}
	once  sync.Once
}

func (c *stdContext) init() {
	c.done = make(chan struct{})
	parentDone := c.Context.Done()
	tokenDone := c.token.Done()
	go func() {
		select {
		case <-parentDone:
		case <-tokenDone:
		}
		close(c.done)
	}()
}

func (c *stdContext) Done() <-chan struct{} {
	c.once.Do(c.init)
	return c.done
}

func (c *stdContext) Err() error {
	if c.token.Requested() {
		return context.Canceled
	}
	return c.Context.Err()
}

// StdContext returns a context.Context that is canceled exactly when tok
// observes its source requested, layered over parent for values/deadline.
func StdContext(parent context.Context, tok StopToken) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return &stdContext{Context: parent, token: tok}
}
