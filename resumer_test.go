package dsk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInlineResumer_RunsSynchronously(t *testing.T) {
	r := InlineResumer()
	var ran bool
	r.Post(NewContinuation(func() { ran = true }))
	require.True(t, ran)
}

func TestInlineResumer_AllInstancesEqual(t *testing.T) {
	require.True(t, InlineResumer().Equal(InlineResumer()))
}

func TestNewResumer_DistinctIdentities(t *testing.T) {
	a := NewResumer(func(Continuation) {})
	b := NewResumer(func(Continuation) {})

	require.False(t, a.Equal(b))
	require.True(t, a.Equal(a))
}

func TestResumer_ZeroValueBehavesInline(t *testing.T) {
	var r Resumer
	var ran bool
	r.Post(NewContinuation(func() { ran = true }))
	require.True(t, ran)
}

func TestResume_InlineFastPathWhenDestEqualsCurrent(t *testing.T) {
	var posted bool
	r := NewResumer(func(Continuation) { posted = true })

	var ran bool
	Resume(NewContinuation(func() { ran = true }), r, r)

	require.True(t, ran)
	require.False(t, posted, "equal source/dest must resume inline, not post")
}

func TestResume_PostsWhenDestDiffersFromCurrent(t *testing.T) {
	var posted bool
	dest := NewResumer(func(c Continuation) { posted = true; c.Resume() })
	current := NewResumer(func(Continuation) {})

	var ran bool
	Resume(NewContinuation(func() { ran = true }), dest, current)

	require.True(t, posted)
	require.True(t, ran)
}
