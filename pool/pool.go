// Package pool provides the slot pools backing the fixed- and
// dynamic-capacity dispatch schedulers in package schedulers. It is kept
// generic — a pool of interface{} — but the two implementations behave
// differently on purpose: NewFixed's Get blocks once capacity is checked
// out, making it usable as a dispatch permit, while NewDynamic's Get never
// blocks.
package pool

// Pool hands out and reclaims slots of some element type, erased to
// interface{} so the same interface serves both implementations. Whether
// Get blocks when no slot is free is implementation-defined: NewFixed
// blocks, NewDynamic does not.
type Pool interface {
	// Get returns a slot from the pool.
	Get() interface{}

	// Put returns a slot to the pool for reuse.
	Put(interface{})
}
