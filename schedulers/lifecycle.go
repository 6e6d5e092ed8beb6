package schedulers

import "sync"

// shutdownSequence runs a fixed teardown order exactly once, generalized
// from the teacher's lifecycleCoordinator (lifecycle.go): stop accepting new
// continuations, wait for in-flight dispatch to drain, then release
// whatever the scheduler-specific close step needs to release.
type shutdownSequence struct {
	once     sync.Once
	stop     func()
	inflight *sync.WaitGroup
	closeFn  func()
}

func (s *shutdownSequence) run() {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
		if s.inflight != nil {
			s.inflight.Wait()
		}
		if s.closeFn != nil {
			s.closeFn()
		}
	})
}
