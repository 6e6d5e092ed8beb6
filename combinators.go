package dsk

import (
	"sync"
	"sync/atomic"

	"github.com/go-dsk/dsk/errs"
)

// SyncWait drives op to completion on the calling goroutine, blocking until
// it finishes, and returns its result. This is the boundary between
// synchronous and asynchronous code (§6 "sync_wait"): the only place a
// non-task goroutine is allowed to block on an [Op] directly, grounded on
// the teacher's ExecFuture.Await pattern in foundation's pkg/async.
func SyncWait[T any](ctx Ctx, op Op[T]) (T, error) {
	if op.IsImmediate() {
		if !op.Initiate(ctx, Continuation{}) {
			r := op.TakeResult()
			return r.Value, r.Err
		}
	}
	var wg sync.WaitGroup
	wg.Add(1)
	cont := NewContinuation(wg.Done)
	if op.Initiate(ctx, cont) {
		wg.Wait()
	}
	r := op.TakeResult()
	return r.Value, r.Err
}

// UntilFirstDone races every op to completion and returns the index and
// result of whichever finishes first. Every other op's subtree is requested
// to stop via a child [StopSource] so it is not left running after the race
// is decided (§6 "until_first_done"). foundation's ExecAny is the basis for
// this, extended here to actually propagate cancellation to the losers,
// which ExecAny itself does not do.
func UntilFirstDone(ctx Ctx, ops ...AnyOp) (winner int, result Result[any]) {
	if len(ops) == 0 {
		panic("dsk: UntilFirstDone called with no ops")
	}

	race := ctx.Child()
	type outcome struct {
		index int
		r     Result[any]
	}
	results := make(chan outcome, len(ops))
	var once sync.Once
	var won outcome

	for i, op := range ops {
		i, op := i, op
		go func() {
			r := AwaitAny(race, op)
			once.Do(func() {
				won = outcome{index: i, r: r}
				race.StopSource().Request()
			})
			results <- outcome{index: i, r: r}
		}()
	}
	for range ops {
		<-results
	}
	return won.index, won.r
}

// opGroupMember pairs an op with the index it was added at, for
// PreserveOrder and for error tagging.
type opGroupMember struct {
	index int
	op    AnyOp
}

// OpGroup runs a dynamically-growing set of ops concurrently and joins them,
// the generalization of the teacher's dispatcher.go inflight WaitGroup and
// reorderer.go/preserve_order.go result-ordering (§6 "async_op_group").
type OpGroup struct {
	ctx           Ctx
	mu            sync.Mutex
	members       []opGroupMember
	wg            sync.WaitGroup
	results       []Result[any]
	preserveOrder bool
	stopOnError   bool
}

// OpGroupOption configures a group at construction time.
type OpGroupOption func(*OpGroup)

// PreserveOrder makes UntilAllDone return results in the order ops were
// added via AddAndInitiate, instead of completion order, matching the
// teacher's preserve_order.go option.
func PreserveOrder() OpGroupOption {
	return func(g *OpGroup) { g.preserveOrder = true }
}

// StopOnError requests ctx's stop source the first time a member op fails,
// the group analogue of error_forwarder.go's "cancel on first error".
func StopOnError() OpGroupOption {
	return func(g *OpGroup) { g.stopOnError = true }
}

// NewOpGroup builds an empty group bound to ctx.
func NewOpGroup(ctx Ctx, opts ...OpGroupOption) *OpGroup {
	g := &OpGroup{ctx: ctx}
	for _, o := range opts {
		o(g)
	}
	return g
}

// AddAndInitiate adds op to the group and starts it immediately.
func (g *OpGroup) AddAndInitiate(op AnyOp) {
	g.mu.Lock()
	idx := len(g.members)
	g.members = append(g.members, opGroupMember{index: idx, op: op})
	g.results = append(g.results, Result[any]{})
	g.mu.Unlock()

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		r := AwaitAny(g.ctx, op)
		g.mu.Lock()
		g.results[idx] = r
		g.mu.Unlock()
		if r.Failed() && g.stopOnError {
			g.ctx.StopSource().Request()
		}
	}()
}

// UntilAllDone blocks until every added member has completed and returns
// their results. With PreserveOrder, results are ordered by add order;
// otherwise no particular order is guaranteed.
func (g *OpGroup) UntilAllDone() []Result[any] {
	g.wg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Result[any], len(g.results))
	copy(out, g.results)
	// g.results is written at g.results[idx] by AddAndInitiate's own
	// goroutine, so it is already add-order regardless of completion order;
	// PreserveOrder only needs to exist as a documented guarantee, not an
	// extra reordering step (unlike the teacher's reorderer.go, which has to
	// re-sort because its slots are appended in completion order).
	return out
}

// StartOn returns an [Op] that runs fn on dest's resumer, regardless of
// where Initiate is called from (§6 "start_on").
func StartOn[T any](dest Resumer, fn func(Ctx) (T, error)) Op[T] {
	return &startOnOp[T]{dest: dest, fn: fn}
}

type startOnOp[T any] struct {
	dest   Resumer
	fn     func(Ctx) (T, error)
	done   atomic.Bool
	result Result[T]
}

func (o *startOnOp[T]) IsImmediate() bool { return false }

func (o *startOnOp[T]) Initiate(ctx Ctx, cont Continuation) bool {
	o.dest.Post(NewContinuation(func() {
		v, err := runRecovered(func() (T, error) { return o.fn(ctx.WithResumer(o.dest)) })
		o.result = Result[T]{Value: v, Err: err}
		o.done.Store(true)
		cont.Resume()
	}))
	return true
}

func (o *startOnOp[T]) IsFailed() bool { return o.result.Err != nil }

func (o *startOnOp[T]) TakeResult() Result[T] {
	if !o.done.Load() {
		panic("dsk: TakeResult called before Op completed")
	}
	return o.result
}

// RunOn rebinds ctx's resumer to dest for the duration of op, without
// forcing a post if the caller is already on dest (§6 "run_on").
func RunOn[T any](dest Resumer, op Op[T]) Op[T] {
	return &resumerRebindOp[T]{dest: dest, inner: op, force: false}
}

// SolelyRunOn is like RunOn but always posts to dest even if the caller is
// already executing on it, guaranteeing dest observes at least one hop
// through its queue (§6 "solely_run_on" — used when dest enforces
// serialization that must include this op even when called reentrantly).
func SolelyRunOn[T any](dest Resumer, op Op[T]) Op[T] {
	return &resumerRebindOp[T]{dest: dest, inner: op, force: true}
}

type resumerRebindOp[T any] struct {
	dest  Resumer
	inner Op[T]
	force bool
}

func (o *resumerRebindOp[T]) IsImmediate() bool { return !o.force && o.inner.IsImmediate() }

func (o *resumerRebindOp[T]) Initiate(ctx Ctx, cont Continuation) bool {
	rebound := ctx.WithResumer(o.dest)
	if !o.force && ctx.Resumer().Equal(o.dest) {
		return o.inner.Initiate(rebound, cont)
	}
	done := make(chan struct{})
	var suspended bool
	o.dest.Post(NewContinuation(func() {
		suspended = o.inner.Initiate(rebound, cont)
		close(done)
	}))
	<-done
	return suspended
}

func (o *resumerRebindOp[T]) IsFailed() bool          { return o.inner.IsFailed() }
func (o *resumerRebindOp[T]) TakeResult() Result[T]   { return o.inner.TakeResult() }

// ResumeOn wraps op so its completion continuation is posted to dest instead
// of wherever op would have resumed it (§6 "resume_on"). The continuation is
// always posted through dest; the inline fast-path of [Resume] is not taken.
func ResumeOn[T any](dest Resumer, op Op[T]) Op[T] {
	return &resumeOnOp[T]{dest: dest, inner: op}
}

type resumeOnOp[T any] struct {
	dest  Resumer
	inner Op[T]
}

func (o *resumeOnOp[T]) IsImmediate() bool { return o.inner.IsImmediate() }

func (o *resumeOnOp[T]) Initiate(ctx Ctx, cont Continuation) bool {
	return o.inner.Initiate(ctx, resumerAwareContinuation(o.dest, cont))
}

func (o *resumeOnOp[T]) IsFailed() bool        { return o.inner.IsFailed() }
func (o *resumeOnOp[T]) TakeResult() Result[T] { return o.inner.TakeResult() }

// ResumeOnOp is the AnyOp counterpart of ResumeOn for heterogeneous
// combinators.
func ResumeOnOp(dest Resumer, op AnyOp) AnyOp {
	return &resumeOnAnyOp{dest: dest, inner: op}
}

type resumeOnAnyOp struct {
	dest  Resumer
	inner AnyOp
}

func (o *resumeOnAnyOp) IsImmediate() bool { return o.inner.IsImmediate() }
func (o *resumeOnAnyOp) Initiate(ctx Ctx, cont Continuation) bool {
	return o.inner.Initiate(ctx, resumerAwareContinuation(o.dest, cont))
}
func (o *resumeOnAnyOp) IsFailed() bool                { return o.inner.IsFailed() }
func (o *resumeOnAnyOp) TakeResultAny() Result[any]    { return o.inner.TakeResultAny() }

// HostedResource is a pooled resource a [MakeHostedOp] op checks out for the
// duration of one op and returns afterward — e.g. a pg.Conn or a mongo
// client session. Grounded on foundation's pg.Connect pool-as-host pattern.
type HostedResource[H any] interface {
	Acquire(ctx Ctx) (H, error)
	Release(h H)
}

// MakeHostedOp builds an [Op] that acquires a host resource, runs fn with
// it, and releases it afterward even if fn fails, matching §4.8's "must-run"
// cleanup guarantee. If the context is already stopped when the op is
// initiated, neither Acquire nor fn runs and the op fails as canceled.
func MakeHostedOp[H, T any](host HostedResource[H], fn func(Ctx, H) (T, error)) Op[T] {
	return OpFunc(func(ctx Ctx) (T, error) {
		var zero T
		h, err := host.Acquire(ctx)
		if err != nil {
			return zero, errs.Wrap(errs.KindDomain, err)
		}
		defer host.Release(h)
		return fn(ctx, h)
	})
}
