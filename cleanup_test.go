package dsk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanupStack_RunsLIFO(t *testing.T) {
	cs := newCleanupStack()
	var order []int
	cs.Push(func() error { order = append(order, 1); return nil })
	cs.Push(func() error { order = append(order, 2); return nil })
	cs.Push(func() error { order = append(order, 3); return nil })

	require.NoError(t, cs.Unwind())
	require.Equal(t, []int{3, 2, 1}, order)
}

func TestCleanupStack_UnwindOnceOnly(t *testing.T) {
	cs := newCleanupStack()
	var calls int
	cs.Push(func() error { calls++; return nil })

	require.NoError(t, cs.Unwind())
	require.NoError(t, cs.Unwind())
	require.Equal(t, 1, calls)
}

func TestCleanupStack_PushAfterUnwindRunsImmediately(t *testing.T) {
	cs := newCleanupStack()
	require.NoError(t, cs.Unwind())

	var ran bool
	cs.Push(func() error { ran = true; return nil })
	require.True(t, ran)
}

func TestCleanupStack_FirstErrorSurfaces(t *testing.T) {
	cs := newCleanupStack()
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	// Pushed in order A, B; LIFO runs B then A, so B's error is "first"
	// encountered during unwind.
	cs.Push(func() error { return errA })
	cs.Push(func() error { return errB })

	require.ErrorIs(t, cs.Unwind(), errB)
}
