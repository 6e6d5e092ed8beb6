package schedulers

import (
	"sync/atomic"

	"github.com/go-dsk/dsk"
)

// inline is a trivial [dsk.Scheduler] wrapping [dsk.InlineResumer]: every
// posted continuation runs synchronously on whatever goroutine calls Post.
// It exists so call sites that take a dsk.Scheduler (rather than a
// dsk.Resumer) can use the inline execution context without a type
// assertion, e.g. in tests that want deterministic, single-goroutine
// ordering.
type inline struct {
	resumer dsk.Resumer
	state   atomic.Int32
}

// NewInline returns the always-synchronous scheduler.
func NewInline() dsk.Scheduler {
	s := &inline{resumer: dsk.InlineResumer()}
	s.state.Store(int32(dsk.SchedulerStarted))
	return s
}

func (s *inline) Resumer() dsk.Resumer { return s.resumer }

func (s *inline) Post(cont dsk.Continuation) { s.resumer.Post(cont) }

func (s *inline) State() dsk.SchedulerState { return dsk.SchedulerState(s.state.Load()) }

func (s *inline) Stop() { s.state.Store(int32(dsk.SchedulerStopped)) }

func (s *inline) Join() { s.state.Store(int32(dsk.SchedulerJoined)) }
