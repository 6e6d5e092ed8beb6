package dsk

// SchedulerState is a Scheduler's lifecycle stage (spec.md §3: "a long-lived
// dispatch object ... with a lifecycle {created → started → stopped →
// joined}").
type SchedulerState int32

const (
	SchedulerCreated SchedulerState = iota
	SchedulerStarted
	SchedulerStopped
	SchedulerJoined
)

func (s SchedulerState) String() string {
	switch s {
	case SchedulerCreated:
		return "created"
	case SchedulerStarted:
		return "started"
	case SchedulerStopped:
		return "stopped"
	case SchedulerJoined:
		return "joined"
	default:
		return "unknown"
	}
}

// Scheduler is a long-lived dispatch engine with threads and a start/stop
// lifecycle. Concrete schedulers live in the dsk/schedulers subpackage; this
// interface is the contract collaborators and combinators program against.
//
// Post must be reentrant, thread-safe, and accepted only between Start and
// Stop (§4.4). Calling Post outside that window is a programming error.
type Scheduler interface {
	// Resumer returns a handle that posts continuations onto this
	// scheduler. The returned Resumer's lifetime must not exceed the
	// scheduler's.
	Resumer() Resumer

	// Post dispatches cont for later execution on this scheduler.
	Post(cont Continuation)

	// State reports the scheduler's current lifecycle stage.
	State() SchedulerState

	// Stop transitions the scheduler to SchedulerStopped, rejecting
	// further Post calls, and begins draining in-flight continuations.
	Stop()

	// Join blocks until every continuation dispatched before Stop has run,
	// then transitions to SchedulerJoined.
	Join()
}
