package dsk

import (
	"context"
	"sync/atomic"

	"github.com/go-dsk/dsk/errs"
)

// BlockingCall adapts a blocking SDK call (a database driver, an HTTP
// round trip, a gRPC unary call — anything whose only concurrency handle
// is a context.Context) into an [Op]. These clients have no native
// suspend/resume point to tail into, so Initiate always launches call on
// its own goroutine and reports itself suspended, unless ctx's stop token
// is already requested at Initiate time, in which case it fails fast
// without ever starting call (§4.1 invariant 4: "Initiate must check for
// already-requested cancellation before doing any work").
//
// call receives a context.Context derived from ctx's stop token (via
// [StdContext]) so that requesting ctx's stop source cancels the
// in-flight call the same way it would cancel any other op. The
// dskhttp/dskredis/dskpg/dsks3 ops and dskgrpc's Unary are built from this
// one shape.
func BlockingCall[T any](call func(context.Context) (T, error)) Op[T] {
	return &blockingOp[T]{call: call}
}

type blockingOp[T any] struct {
	call      func(context.Context) (T, error)
	initOnce  atomic.Bool
	takeOnce  atomic.Bool
	done      atomic.Bool
	result    Result[T]
}

func (o *blockingOp[T]) IsImmediate() bool { return false }

func (o *blockingOp[T]) Initiate(ctx Ctx, cont Continuation) bool {
	if !o.initOnce.CompareAndSwap(false, true) {
		panic(errs.ErrDoubleInitiate)
	}
	if ctx.StopToken().Requested() {
		var zero T
		o.result = Result[T]{Value: zero, Err: errs.ErrCanceled}
		o.done.Store(true)
		return false
	}
	go func() {
		v, err := runRecovered(func() (T, error) {
			return o.call(StdContext(context.Background(), ctx.StopToken()))
		})
		o.result = Result[T]{Value: v, Err: err}
		o.done.Store(true)
		cont.Resume()
	}()
	return true
}

func (o *blockingOp[T]) IsFailed() bool { return o.result.Err != nil }

func (o *blockingOp[T]) TakeResult() Result[T] {
	if !o.done.Load() {
		panic("dsk: TakeResult called before Op completed")
	}
	if !o.takeOnce.CompareAndSwap(false, true) {
		panic(errs.ErrDoubleTake)
	}
	return o.result
}
