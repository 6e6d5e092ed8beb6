package schedulers

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"

	"github.com/go-dsk/dsk"
	"github.com/go-dsk/dsk/dsklog"
	"github.com/go-dsk/dsk/metrics"
	"github.com/go-dsk/dsk/pool"
)

// poolScheduler dispatches posted continuations onto a pool of goroutine
// slots, generalized from the teacher's workers.go dispatch loop (the
// "receive a task, spin up w.dispatch(ctx, t) on its own goroutine, which
// checks out a pooled worker" shape) and worker.go's per-task panic
// recovery. Both the fixed- and dynamic-capacity schedulers share this type,
// differing only in which pool.Pool backs them: run acquires a slot from p
// before spawning execute's goroutine, so p.Get/p.Put double as the actual
// dispatch permit bounding concurrency, not just an object cache — a
// pool.NewFixed(n, ...) caps live dispatch at n, while pool.NewDynamic never
// blocks and so never throttles.
type poolScheduler struct {
	resumer   dsk.Resumer
	queue     chan dsk.Continuation
	p         pool.Pool
	state     atomic.Int32
	inflight  sync.WaitGroup
	shutdown  shutdownSequence
	done      chan struct{}
	metrics   metrics.Provider
	queueSize metrics.UpDownCounter
	dispatch  metrics.Counter
	panics    metrics.Counter
	latency   metrics.Histogram
	logger    *logiface.Logger[*dsklog.Event]
}

func newPoolScheduler(p pool.Pool, cfg config) *poolScheduler {
	logger := cfg.logger
	if logger == nil {
		logger = dsklog.Discard()
	}
	s := &poolScheduler{
		queue:   make(chan dsk.Continuation, cfg.queueSize),
		p:       p,
		done:    make(chan struct{}),
		metrics: cfg.metrics,
		logger:  logger,
	}
	s.queueSize = s.metrics.UpDownCounter("dsk_scheduler_queue_depth")
	s.dispatch = s.metrics.Counter("dsk_scheduler_dispatched_total")
	s.panics = s.metrics.Counter("dsk_scheduler_panics_total")
	s.latency = s.metrics.Histogram("dsk_scheduler_dispatch_latency_seconds")
	s.resumer = dsk.NewResumer(s.post)
	s.state.Store(int32(dsk.SchedulerStarted))
	s.shutdown.stop = func() {
		s.state.Store(int32(dsk.SchedulerStopped))
		close(s.done)
		s.logger.Notice().Log("scheduler stopped")
	}
	go s.run()
	return s
}

func (s *poolScheduler) post(cont dsk.Continuation) {
	if dsk.SchedulerState(s.state.Load()) != dsk.SchedulerStarted {
		panic("schedulers: Post called on a stopped scheduler")
	}
	s.queueSize.Add(1)
	s.queue <- cont
}

func (s *poolScheduler) run() {
	for {
		select {
		case <-s.done:
			return
		case cont := <-s.queue:
			s.queueSize.Add(-1)
			// Get blocks here, before the goroutine is spawned, so it acts
			// as a dispatch permit: run cannot dequeue the next continuation
			// until a slot is free, bounding concurrent dispatch to the
			// pool's capacity instead of spawning one goroutine per
			// continuation.
			slot := s.p.Get()
			s.inflight.Add(1)
			go s.execute(cont, slot)
		}
	}
}

func (s *poolScheduler) execute(cont dsk.Continuation, slot interface{}) {
	defer s.inflight.Done()
	defer s.p.Put(slot)

	start := time.Now()
	defer func() {
		s.latency.Record(time.Since(start).Seconds())
		if p := recover(); p != nil {
			s.panics.Add(1)
			s.logger.Err().Interface("panic", p).Log("continuation panicked during dispatch")
		}
	}()
	cont.Resume()
	s.dispatch.Add(1)
}

func (s *poolScheduler) Resumer() dsk.Resumer { return s.resumer }

func (s *poolScheduler) Post(cont dsk.Continuation) { s.resumer.Post(cont) }

func (s *poolScheduler) State() dsk.SchedulerState {
	return dsk.SchedulerState(s.state.Load())
}

func (s *poolScheduler) Stop() {
	s.shutdown.run()
}

func (s *poolScheduler) Join() {
	s.inflight.Wait()
	s.state.Store(int32(dsk.SchedulerJoined))
}
