package dsk

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-dsk/dsk/errs"
	"github.com/stretchr/testify/require"
)

// manualOp is a test-only Op[T] that suspends until release is closed,
// then resolves to val.
type manualOp[T any] struct {
	val       T
	release   chan struct{}
	initiated atomic.Bool
	result    Result[T]
}

func (o *manualOp[T]) IsImmediate() bool { return false }

func (o *manualOp[T]) Initiate(_ Ctx, cont Continuation) bool {
	if !o.initiated.CompareAndSwap(false, true) {
		panic(errs.ErrDoubleInitiate)
	}
	go func() {
		<-o.release
		o.result = Result[T]{Value: o.val}
		cont.Resume()
	}()
	return true
}

func (o *manualOp[T]) IsFailed() bool        { return o.result.Err != nil }
func (o *manualOp[T]) TakeResult() Result[T] { return o.result }

func TestGo_RunsToCompletion(t *testing.T) {
	ctx := Background()
	task := Go(ctx, func(Ctx) (int, error) { return 7, nil })

	val, err := SyncWait(ctx, task.Op())
	require.NoError(t, err)
	require.Equal(t, 7, val)
}

func TestGo_RecoversPanic(t *testing.T) {
	ctx := Background()
	task := Go(ctx, func(Ctx) (int, error) { panic("kaboom") })

	_, err := SyncWait(ctx, task.Op())
	require.Error(t, err)
	require.Equal(t, errs.KindDomain, errs.KindOf(err))
}

func TestTask_CleanupOrderAndOriginalErrorSurvivesCleanupFailure(t *testing.T) {
	ctx := Background()
	taskErr := errors.New("task failed")
	var order []string

	task := Go(ctx, func(c Ctx) (int, error) {
		c.Cleanup().Push(func() error { order = append(order, "A"); return errors.New("A's own cleanup error") })
		c.Cleanup().Push(func() error { order = append(order, "B"); return nil })
		return 0, taskErr
	})

	_, err := SyncWait(ctx, task.Op())
	require.Same(t, taskErr, err, "the task's own error must be reported, not any cleanup error")

	require.NoError(t, ctx.Cleanup().Unwind())
	require.Equal(t, []string{"B", "A"}, order)
}

func TestAwait_SuspendsUntilOpCompletes(t *testing.T) {
	parent := Background()
	slow := &manualOp[int]{val: 99, release: make(chan struct{})}

	task := Go(parent, func(ctx Ctx) (int, error) {
		return Await(ctx, slow)
	})

	select {
	case <-task.finished:
		t.Fatal("task finished before the slow op was unblocked")
	case <-time.After(50 * time.Millisecond):
	}

	close(slow.release)

	val, err := SyncWait(parent, task.Op())
	require.NoError(t, err)
	require.Equal(t, 99, val)
}

func TestTaskOp_DoubleInitiatePanics(t *testing.T) {
	ctx := Background()
	task := Go(ctx, func(Ctx) (int, error) { return 1, nil })

	op := task.Op()
	op.Initiate(ctx, NewContinuation(func() {}))
	require.PanicsWithError(t, errs.ErrDoubleInitiate.Error(), func() {
		op.Initiate(ctx, Continuation{})
	})
}

func TestTaskOp_IsImmediateOnceFinished(t *testing.T) {
	ctx := Background()
	task := Go(ctx, func(Ctx) (int, error) { return 1, nil })
	<-task.finished

	require.True(t, task.Op().IsImmediate())
}
