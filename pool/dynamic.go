package pool

import "sync"

// NewDynamic returns an unbounded, GC-reclaimable pool backed by sync.Pool.
// schedulers.NewDynamicPool uses one of these when worker count should grow
// and shrink with load instead of being capped up front.
func NewDynamic(newFn func() interface{}) Pool {
	return &sync.Pool{New: newFn}
}
