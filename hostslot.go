package dsk

import "sync"

// HostSlot holds at most one host value of type H at a time, tagged by a
// comparable key. Resolves the open question in spec.md §9 ("does
// assure_var_holds preserve identity across calls when the index/tag is
// unchanged?"): yes — AssureHolds only calls construct and replaces the held
// value when tag differs from whatever is currently held; a call with the
// same tag as last time returns the existing value unchanged, without
// tearing it down and rebuilding it.
//
// This backs [MakeHostedOp]'s common case of "swap the backing connection
// only when the target shard/endpoint changes", grounded on
// foundation's pg.Connect pool-as-host pattern generalized to also cover
// same-tag reuse instead of acquiring fresh every call.
type HostSlot[Tag comparable, H any] struct {
	mu      sync.Mutex
	has     bool
	tag     Tag
	held    H
	destroy func(H) error
}

// AssureHolds returns the value held under tag, constructing one via
// construct if the slot is empty or currently holds a different tag. When a
// different tag's value is replaced, destroy (if non-nil, set via
// NewHostSlot) runs on the value being evicted before construct runs.
func (s *HostSlot[Tag, H]) AssureHolds(tag Tag, construct func() (H, error)) (H, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has && s.tag == tag {
		return s.held, nil
	}

	if s.has && s.destroy != nil {
		_ = s.destroy(s.held)
	}
	s.has = false

	v, err := construct()
	if err != nil {
		var zero H
		return zero, err
	}
	s.held = v
	s.tag = tag
	s.has = true
	return v, nil
}

// Close evicts and destroys whatever the slot currently holds, if anything.
func (s *HostSlot[Tag, H]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has {
		return nil
	}
	s.has = false
	if s.destroy == nil {
		return nil
	}
	return s.destroy(s.held)
}

// NewHostSlot returns an empty slot. destroy may be nil if held values need
// no teardown.
func NewHostSlot[Tag comparable, H any](destroy func(H) error) *HostSlot[Tag, H] {
	return &HostSlot[Tag, H]{destroy: destroy}
}
