package schedulers

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-dsk/dsk"
)

func awaitContinuation(t *testing.T, s dsk.Scheduler, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	s.Post(dsk.NewContinuation(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("continuation never ran")
	}
}

func TestNewFixedPool_ZeroCapacityPanics(t *testing.T) {
	require.Panics(t, func() { NewFixedPool(0) })
}

func TestNewFixedPool_RunsPostedContinuations(t *testing.T) {
	s := NewFixedPool(2)
	defer func() { s.Stop(); s.Join() }()

	require.Equal(t, dsk.SchedulerStarted, s.State())

	var n int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		s.Post(dsk.NewContinuation(func() {
			atomic.AddInt32(&n, 1)
			wg.Done()
		}))
	}
	wg.Wait()
	require.EqualValues(t, 10, atomic.LoadInt32(&n))
}

func TestNewFixedPool_StopThenJoinDrainsInFlight(t *testing.T) {
	s := NewFixedPool(1)

	started := make(chan struct{})
	release := make(chan struct{})
	var ran bool
	s.Post(dsk.NewContinuation(func() {
		close(started)
		<-release
		ran = true
	}))
	<-started

	s.Stop()
	require.Equal(t, dsk.SchedulerStopped, s.State())
	close(release)

	s.Join()
	require.Equal(t, dsk.SchedulerJoined, s.State())
	require.True(t, ran)
}

func TestNewFixedPool_PostAfterStopPanics(t *testing.T) {
	s := NewFixedPool(1)
	s.Stop()
	s.Join()
	require.Panics(t, func() { s.Post(dsk.NewContinuation(func() {})) })
}

func TestNewFixedPool_BoundsConcurrentDispatch(t *testing.T) {
	const capacity = 3
	s := NewFixedPool(capacity, WithQueueSize(50))
	defer func() { s.Stop(); s.Join() }()

	var mu sync.Mutex
	var concurrent, maxConcurrent int
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		s.Post(dsk.NewContinuation(func() {
			defer wg.Done()
			mu.Lock()
			concurrent++
			if concurrent > maxConcurrent {
				maxConcurrent = concurrent
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			concurrent--
			mu.Unlock()
		}))
	}
	wg.Wait()
	require.LessOrEqual(t, maxConcurrent, capacity, "fixed pool must never dispatch more than its capacity concurrently")
	require.Equal(t, capacity, maxConcurrent, "fixed pool of capacity 3 under load should actually reach full concurrency")
}

func TestNewDynamicPool_RunsPostedContinuations(t *testing.T) {
	s := NewDynamicPool()
	defer func() { s.Stop(); s.Join() }()
	awaitContinuation(t, s, time.Second)
}

func TestNewStrand_SerializesExecution(t *testing.T) {
	s := NewStrand()
	defer func() { s.Stop(); s.Join() }()

	var mu sync.Mutex
	var concurrent, maxConcurrent int
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		s.Post(dsk.NewContinuation(func() {
			defer wg.Done()
			mu.Lock()
			concurrent++
			if concurrent > maxConcurrent {
				maxConcurrent = concurrent
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			concurrent--
			mu.Unlock()
		}))
	}
	wg.Wait()
	require.Equal(t, 1, maxConcurrent, "strand must never run two continuations concurrently")
}

func TestNewStrand_JoinWaitsForRunLoopExit(t *testing.T) {
	s := NewStrand()
	s.Stop()
	s.Join()
	require.Equal(t, dsk.SchedulerJoined, s.State())
}

func TestNewInline_PostRunsSynchronously(t *testing.T) {
	s := NewInline()
	var ran bool
	s.Post(dsk.NewContinuation(func() { ran = true }))
	require.True(t, ran)

	s.Stop()
	s.Join()
	require.Equal(t, dsk.SchedulerJoined, s.State())
}

func TestWithQueueSize_ZeroStillDispatches(t *testing.T) {
	s := NewFixedPool(1, WithQueueSize(0))
	defer func() { s.Stop(); s.Join() }()
	awaitContinuation(t, s, time.Second)
}

func TestWithMetrics_NilPanics(t *testing.T) {
	require.Panics(t, func() { NewFixedPool(1, WithMetrics(nil)) })
}
