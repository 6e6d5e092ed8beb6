package schedulers

import (
	"github.com/go-dsk/dsk"
	"github.com/go-dsk/dsk/pool"
)

// NewDynamicPool returns a [dsk.Scheduler] whose goroutine-slot pool grows
// and shrinks with load via sync.Pool, instead of being capped up front.
// Grounded on the teacher's default workers.New(ctx, nil) (MaxWorkers == 0)
// / pool.NewDynamic pairing.
func NewDynamicPool(opts ...Option) dsk.Scheduler {
	cfg := buildConfig(opts)
	p := pool.NewDynamic(func() interface{} { return struct{}{} })
	return newPoolScheduler(p, cfg)
}
