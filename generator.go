package dsk

import (
	"sync/atomic"

	"github.com/go-dsk/dsk/errs"
)

// Maybe holds either a yielded value or signals end-of-sequence (Ok false).
type Maybe[T any] struct {
	Value T
	Ok    bool
}

// Yield is the callback a generator body calls to produce one element and
// suspend until the consumer asks for the next one.
type Yield[T any] func(T) error

// Generator is a sequence-producing task (§4.9): its body calls a yield
// function once per element instead of returning a single result. Built the
// same way [Task] is — one goroutine per generator, parked on a channel
// between elements — grounded on tcard-coro's yield/resume handoff.
//
// A Generator that is abandoned (dropped without being driven to
// completion) registers its teardown on the parent's [CleanupStack] so the
// goroutine is not leaked; see §8 scenario S5.
type Generator[T any] struct {
	fn        func(Ctx, Yield[T]) error
	ctx       Ctx
	resume    chan struct{}
	yielded   chan Maybe[T]
	err       error
	done      atomic.Bool
	started   atomic.Bool
	abandoned atomic.Bool
}

// NewGenerator builds a Generator whose body is fn, derived from parentCtx's
// stop source via Child (so stopping the parent stops the generator too).
// The body does not start running until the first call to Next. The
// generator is registered on parentCtx's cleanup stack here, at
// construction, so an abandoned generator's goroutine is unparked and
// allowed to exit when the parent scope unwinds, rather than leaking.
func NewGenerator[T any](parentCtx Ctx, fn func(Ctx, Yield[T]) error) *Generator[T] {
	g := &Generator[T]{
		fn:      fn,
		ctx:     parentCtx.Child(),
		resume:  make(chan struct{}),
		yielded: make(chan Maybe[T], 1),
	}
	parentCtx.Cleanup().Push(func() error {
		g.abandon()
		return nil
	})
	return g
}

// Next returns an [Op] that yields the next element, or a Maybe with Ok
// false once the generator body returns. Calling Next after exhaustion
// panics, mirroring §7's hard-invariant treatment of protocol violations.
func (g *Generator[T]) Next(_ Ctx) Op[Maybe[T]] {
	if g.done.Load() {
		panic("dsk: Next called on an exhausted Generator")
	}
	return OpFunc(func(_ Ctx) (Maybe[T], error) {
		if g.done.Load() {
			panic("dsk: Next called on an exhausted Generator")
		}
		if g.started.CompareAndSwap(false, true) {
			go g.run()
		} else {
			g.resume <- struct{}{}
		}
		m := <-g.yielded
		if !m.Ok {
			g.done.Store(true)
			return m, g.err
		}
		return m, nil
	})
}

func (g *Generator[T]) run() {
	err := runVoidRecovered(func() error { return g.fn(g.ctx, g.yield) })
	g.err = err
	g.yielded <- Maybe[T]{Ok: false}
}

// yield is passed to the generator body as its Yield[T] callback. It parks
// the producer goroutine until the consumer calls Next again, or until
// abandon closes resume, at which point it reports cancellation so the body
// can unwind its own cleanups and return.
func (g *Generator[T]) yield(v T) error {
	g.yielded <- Maybe[T]{Value: v, Ok: true}
	_, ok := <-g.resume
	if !ok {
		return errs.ErrCanceled
	}
	if g.ctx.StopToken().Requested() {
		return errs.ErrCanceled
	}
	return nil
}

// abandon unparks a generator body stuck at a yield point so its goroutine
// can observe cancellation and return, instead of leaking forever. Safe to
// call multiple times and safe to call on a generator that was never
// started.
func (g *Generator[T]) abandon() {
	if !g.abandoned.CompareAndSwap(false, true) {
		return
	}
	g.ctx.StopSource().Request()
	if !g.started.Load() {
		return
	}
	close(g.resume)
}

func runVoidRecovered(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errs.Panic(p)
		}
	}()
	return fn()
}
