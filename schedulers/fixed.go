package schedulers

import (
	"github.com/go-dsk/dsk"
	"github.com/go-dsk/dsk/pool"
)

// NewFixedPool returns a [dsk.Scheduler] backed by a bounded pool of at most
// n goroutine slots: continuations queue up once all n are busy, rather
// than spawning unbounded goroutines. Grounded on the teacher's
// workers.New(ctx, &Config{MaxWorkers: n}) / pool.NewFixed pairing.
func NewFixedPool(n uint, opts ...Option) dsk.Scheduler {
	if n == 0 {
		panic("schedulers: NewFixedPool requires n > 0")
	}
	cfg := buildConfig(opts)
	p := pool.NewFixed(n, func() interface{} { return struct{}{} })
	return newPoolScheduler(p, cfg)
}
