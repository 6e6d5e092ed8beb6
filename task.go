package dsk

import (
	"sync/atomic"

	"github.com/go-dsk/dsk/errs"
)

// Task is a coroutine-hosted computation (§4.3). Go has no stackful-coroutine
// or symmetric-transfer primitive, so a Task here is hosted on its own
// goroutine, parked on a channel at every await point instead of suspending
// a call stack in place. This is the same handoff shape tcard-coro uses for
// its generator: one goroutine per logical coroutine, one channel carrying
// the "resume" signal in each direction.
//
// A Task completes at most once; its result is available as an [Op] via Op,
// so a Task composes with every other combinator in this package.
type Task[T any] struct {
	ctx    Ctx
	result Result[T]
	done   atomic.Bool
	// awaken is allocated with a buffer of 1 but is not read or written
	// anywhere; Await parks on its own per-call channel instead.
	awaken chan struct{}
	// finished closes when the task goroutine returns, letting Op's Initiate
	// register a continuation that fires exactly once.
	finished chan struct{}
}

// Go starts fn on a new goroutine bound to ctx and returns a handle to it.
// fn runs until it returns or panics; a panic is recovered and reported as
// the task's error, mirroring the teacher's task.go/worker.go convention of
// never letting a worker panic escape to crash the process.
//
// fn receives ctx bound to a fresh cleanup stack owned by the task. When fn
// returns, that stack is unwound in LIFO order before the task completes; a
// cleanup error never replaces fn's own result.
func Go[T any](ctx Ctx, fn func(Ctx) (T, error)) *Task[T] {
	t := &Task[T]{
		ctx:      ctx.WithCleanup(newCleanupStack()),
		awaken:   make(chan struct{}, 1),
		finished: make(chan struct{}),
	}
	go t.run(fn)
	return t
}

func (t *Task[T]) run(fn func(Ctx) (T, error)) {
	v, err := runRecovered(func() (T, error) { return fn(t.ctx) })
	_ = t.ctx.Cleanup().Unwind()
	t.result = Result[T]{Value: v, Err: err}
	t.done.Store(true)
	close(t.finished)
}

// taskOp adapts a *Task[T] to the [Op] contract so it can be awaited,
// grouped, or raced like any other op.
type taskOp[T any] struct {
	task      *Task[T]
	taken     atomic.Bool
	suspended atomic.Bool
}

// Op returns an [Op] that completes when the task's goroutine finishes.
// Initiate returns false (synchronous) if the task has already finished by
// the time it is called, otherwise true, resuming cont from a separate
// goroutine that waits for the task's finished channel to close.
func (t *Task[T]) Op() Op[T] { return &taskOp[T]{task: t} }

func (o *taskOp[T]) IsImmediate() bool { return o.task.done.Load() }

func (o *taskOp[T]) Initiate(_ Ctx, cont Continuation) bool {
	if !o.suspended.CompareAndSwap(false, true) {
		panic(errs.ErrDoubleInitiate)
	}
	select {
	case <-o.task.finished:
		return false
	default:
	}
	go func() {
		<-o.task.finished
		cont.Resume()
	}()
	return true
}

func (o *taskOp[T]) IsFailed() bool { return o.task.result.Err != nil }

func (o *taskOp[T]) TakeResult() Result[T] {
	if !o.task.done.Load() {
		panic("dsk: TakeResult called before Op completed")
	}
	if !o.taken.CompareAndSwap(false, true) {
		panic(errs.ErrDoubleTake)
	}
	return o.task.result
}

// Await suspends the calling task until op completes, resuming on ctx's
// resumer, and returns its result directly instead of requiring a second
// TakeResult call. Its erased counterpart [AwaitAny] is what UntilFirstDone
// and OpGroup are built from.
//
// Await must be called from inside a Task's fn (i.e. on a goroutine started
// by [Go] or a collaborator built the same way) because suspension parks the
// calling goroutine on a channel rather than unwinding a call stack.
func Await[T any](ctx Ctx, op Op[T]) (T, error) {
	if op.IsImmediate() {
		done := op.Initiate(ctx, Continuation{})
		if !done {
			r := op.TakeResult()
			return r.Value, r.Err
		}
	}

	ready := make(chan struct{})
	cont := NewContinuation(func() { close(ready) })
	suspended := op.Initiate(ctx, resumerAwareContinuation(ctx.Resumer(), cont))
	if !suspended {
		r := op.TakeResult()
		return r.Value, r.Err
	}
	<-ready
	r := op.TakeResult()
	return r.Value, r.Err
}

// AwaitAny is the [AnyOp] counterpart of Await, used by combinators that hold
// erased ops (UntilFirstDone, OpGroup).
func AwaitAny(ctx Ctx, op AnyOp) Result[any] {
	if op.IsImmediate() {
		done := op.Initiate(ctx, Continuation{})
		if !done {
			return op.TakeResultAny()
		}
	}

	ready := make(chan struct{})
	cont := NewContinuation(func() { close(ready) })
	suspended := op.Initiate(ctx, resumerAwareContinuation(ctx.Resumer(), cont))
	if !suspended {
		return op.TakeResultAny()
	}
	<-ready
	return op.TakeResultAny()
}
