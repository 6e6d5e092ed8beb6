package schedulers

import (
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"

	"github.com/go-dsk/dsk"
	"github.com/go-dsk/dsk/dsklog"
	"github.com/go-dsk/dsk/metrics"
)

// strand is a single-goroutine, strictly-serialized scheduler: continuations
// run one at a time, in post order, never concurrently with one another.
// Grounded on the teacher's (build-tag-gated) fifoWorkers in fifo.go, which
// runs tasks "sequentially in submission order" without a pool — generalized
// here from typed tasks to [dsk.Continuation] values. Useful as a mutual-
// exclusion resumer for a resource that isn't safe for concurrent access
// (a single DB connection, a single socket) without a separate mutex.
type strand struct {
	resumer  dsk.Resumer
	queue    chan dsk.Continuation
	done     chan struct{}
	state    atomic.Int32
	shutdown shutdownSequence
	exited   chan struct{}
	metrics  metrics.Provider
	dispatch metrics.Counter
	panics   metrics.Counter
	latency  metrics.Histogram
	logger   *logiface.Logger[*dsklog.Event]
}

// NewStrand returns a [dsk.Scheduler] that runs every posted continuation
// to completion before starting the next one.
func NewStrand(opts ...Option) dsk.Scheduler {
	cfg := buildConfig(opts)
	logger := cfg.logger
	if logger == nil {
		logger = dsklog.Discard()
	}
	s := &strand{
		queue:   make(chan dsk.Continuation, cfg.queueSize),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
		metrics: cfg.metrics,
		logger:  logger,
	}
	s.dispatch = s.metrics.Counter("dsk_strand_dispatched_total")
	s.panics = s.metrics.Counter("dsk_strand_panics_total")
	s.latency = s.metrics.Histogram("dsk_strand_dispatch_latency_seconds")
	s.resumer = dsk.NewResumer(s.post)
	s.state.Store(int32(dsk.SchedulerStarted))
	s.shutdown.stop = func() {
		s.state.Store(int32(dsk.SchedulerStopped))
		close(s.done)
		s.logger.Notice().Log("strand stopped")
	}
	go s.run()
	return s
}

func (s *strand) post(cont dsk.Continuation) {
	if dsk.SchedulerState(s.state.Load()) != dsk.SchedulerStarted {
		panic("schedulers: Post called on a stopped scheduler")
	}
	s.queue <- cont
}

func (s *strand) run() {
	defer close(s.exited)
	for {
		select {
		case <-s.done:
			return
		case cont := <-s.queue:
			s.executeOne(cont)
		}
	}
}

func (s *strand) executeOne(cont dsk.Continuation) {
	start := time.Now()
	defer func() {
		s.latency.Record(time.Since(start).Seconds())
		if p := recover(); p != nil {
			s.panics.Add(1)
			s.logger.Err().Interface("panic", p).Log("continuation panicked during strand dispatch")
		}
	}()
	cont.Resume()
	s.dispatch.Add(1)
}

func (s *strand) Resumer() dsk.Resumer { return s.resumer }

func (s *strand) Post(cont dsk.Continuation) { s.resumer.Post(cont) }

func (s *strand) State() dsk.SchedulerState { return dsk.SchedulerState(s.state.Load()) }

func (s *strand) Stop() {
	s.shutdown.run()
}

func (s *strand) Join() {
	<-s.exited
	s.state.Store(int32(dsk.SchedulerJoined))
}
