package schedulers

import (
	"github.com/joeycumines/logiface"

	"github.com/go-dsk/dsk/dsklog"
	"github.com/go-dsk/dsk/metrics"
)

// config is the builder state assembled from Option values, mirroring the
// teacher's configOptions in options.go.
type config struct {
	queueSize uint
	metrics   metrics.Provider
	logger    *logiface.Logger[*dsklog.Event]
}

func defaultConfig() config {
	return config{
		queueSize: 1024,
		metrics:   metrics.NewBasicProvider(),
	}
}

// Option configures a scheduler at construction time.
type Option func(*config)

// WithQueueSize sets the buffer size of the scheduler's continuation queue.
// Zero means unbuffered: Post blocks until a worker is ready to receive.
func WithQueueSize(n uint) Option {
	return func(c *config) { c.queueSize = n }
}

// WithMetrics attaches a metrics provider the scheduler reports
// queue-depth, dispatch-count, and dispatch-latency instruments to. Defaults
// to an in-memory [metrics.BasicProvider] when omitted, never to a silently
// no-op provider, so a scheduler constructed with zero options is still
// observable in tests.
func WithMetrics(p metrics.Provider) Option {
	return func(c *config) {
		if p == nil {
			panic("schedulers: WithMetrics requires a non-nil Provider")
		}
		c.metrics = p
	}
}

// WithLogger attaches a structured logger for lifecycle and panic-recovery
// events. Defaults to a discarding logger.
func WithLogger(l *logiface.Logger[*dsklog.Event]) Option {
	return func(c *config) { c.logger = l }
}

func buildConfig(opts []Option) config {
	c := defaultConfig()
	for _, o := range opts {
		if o == nil {
			panic("schedulers: nil Option")
		}
		o(&c)
	}
	return c
}
