package dsk

import (
	"sync/atomic"

	"github.com/go-dsk/dsk/errs"
)

// Result is the tagged-union outcome of an [Op]: either a value of T or an
// error drawn from the taxonomy in package errs (§3 "Result").
type Result[T any] struct {
	Value T
	Err   error
}

// Failed reports whether the result carries an error.
func (r Result[T]) Failed() bool { return r.Err != nil }

// Op is the contract every asynchronous operation satisfies (§4.1). It is
// generic over its result type; AnyOp erases that for heterogeneous
// combinators such as [UntilFirstDone].
//
// Initiate must be called at most once. If it returns true ("suspended"),
// cont is invoked exactly once when the op completes, from any goroutine,
// after TakeResult is valid. If it returns false ("completed
// synchronously"), the caller must not invoke cont — the result is already
// available via TakeResult.
type Op[T any] interface {
	// IsImmediate hints that Initiate will complete synchronously.
	IsImmediate() bool

	// Initiate begins the operation. ctx carries the resumer, stop token,
	// and cleanup stack; cont is what must run when the op completes
	// asynchronously. Returns true if the op suspended.
	Initiate(ctx Ctx, cont Continuation) bool

	// IsFailed reports the final state. Valid only after completion.
	IsFailed() bool

	// TakeResult consumes the result. Callable exactly once after
	// completion.
	TakeResult() Result[T]
}

// AnyOp erases T for combinators that hold heterogeneous ops (UntilFirstDone,
// OpGroup).
type AnyOp interface {
	IsImmediate() bool
	Initiate(ctx Ctx, cont Continuation) bool
	IsFailed() bool
	TakeResultAny() Result[any]
}

// erasedOp adapts an Op[T] to AnyOp by boxing its result into Result[any].
type erasedOp[T any] struct{ op Op[T] }

func (e erasedOp[T]) IsImmediate() bool                     { return e.op.IsImmediate() }
func (e erasedOp[T]) Initiate(ctx Ctx, cont Continuation) bool { return e.op.Initiate(ctx, cont) }
func (e erasedOp[T]) IsFailed() bool                         { return e.op.IsFailed() }
func (e erasedOp[T]) TakeResultAny() Result[any] {
	r := e.op.TakeResult()
	return Result[any]{Value: r.Value, Err: r.Err}
}

// Erase wraps op as an AnyOp for use in heterogeneous combinators.
func Erase[T any](op Op[T]) AnyOp { return erasedOp[T]{op: op} }

// opFunc adapts a plain function into an Op[T] that always completes
// synchronously — the async-op equivalent of the teacher's task[R]
// (ygrebnov-workers/task.go), which ran arbitrary func signatures to
// completion on one goroutine. opFunc generalizes that into the minimal
// Op[T] shape so ordinary functions compose with Await/SyncWait/OpGroup.
type opFunc[T any] struct {
	fn       func(Ctx) (T, error)
	done     atomic.Bool
	initOnce atomic.Bool
	takeOnce atomic.Bool
	result   Result[T]
}

// OpFunc builds an Op[T] that runs fn to completion (on whatever goroutine
// initiates it) and reports itself as completed synchronously. Used to lift
// ordinary functions into the Op contract, e.g. inside [Go] bodies or
// as leaves of an [OpGroup].
func OpFunc[T any](fn func(Ctx) (T, error)) Op[T] {
	return &opFunc[T]{fn: fn}
}

func (o *opFunc[T]) IsImmediate() bool { return true }

func (o *opFunc[T]) Initiate(ctx Ctx, _ Continuation) bool {
	if !o.initOnce.CompareAndSwap(false, true) {
		panic(errs.ErrDoubleInitiate)
	}
	if ctx.StopToken().Requested() {
		var zero T
		o.result = Result[T]{Value: zero, Err: errs.ErrCanceled}
		o.done.Store(true)
		return false
	}
	v, err := runRecovered(func() (T, error) { return o.fn(ctx) })
	o.result = Result[T]{Value: v, Err: err}
	o.done.Store(true)
	return false
}

func (o *opFunc[T]) IsFailed() bool { return o.result.Err != nil }

func (o *opFunc[T]) TakeResult() Result[T] {
	if !o.done.Load() {
		panic("dsk: TakeResult called before Op completed")
	}
	if !o.takeOnce.CompareAndSwap(false, true) {
		panic(errs.ErrDoubleTake)
	}
	return o.result
}

// runRecovered runs fn, converting a panic into an error the way the
// teacher's worker.go/task.go convert task panics into errors, rather than
// letting them escape and kill the scheduler goroutine.
func runRecovered[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			result = zero
			err = errs.Panic(p)
		}
	}()
	return fn()
}
