package pool

// fixed is a bounded pool: exactly capacity elements are ever live, and Get
// blocks once all of them are checked out, making Get/Put usable as a
// dispatch permit rather than a mere object cache. schedulers.NewFixedPool
// relies on this to bound concurrent dispatch to its worker count.
type fixed struct {
	slots chan interface{}
}

// NewFixed returns a Pool that holds exactly capacity elements, constructed
// up front with newFn. Get blocks until a previously checked-out element is
// returned via Put, so at most capacity callers can hold a slot at once.
func NewFixed(capacity uint, newFn func() interface{}) Pool {
	slots := make(chan interface{}, capacity)
	for i := uint(0); i < capacity; i++ {
		slots <- newFn()
	}
	return &fixed{slots: slots}
}

func (p *fixed) Get() interface{} {
	return <-p.slots
}

func (p *fixed) Put(el interface{}) {
	p.slots <- el
}
