package dsk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerator_YieldsInOrderThenExhausts(t *testing.T) {
	parent := Background()
	g := NewGenerator(parent, func(ctx Ctx, yield Yield[int]) error {
		for i := 1; i <= 3; i++ {
			if err := yield(i); err != nil {
				return err
			}
		}
		return nil
	})

	var got []int
	for {
		m, err := SyncWait(parent, g.Next(parent))
		require.NoError(t, err)
		if !m.Ok {
			break
		}
		got = append(got, m.Value)
	}
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestGenerator_NextAfterExhaustionPanics(t *testing.T) {
	parent := Background()
	g := NewGenerator(parent, func(ctx Ctx, yield Yield[int]) error { return nil })

	m, err := SyncWait(parent, g.Next(parent))
	require.NoError(t, err)
	require.False(t, m.Ok)

	require.Panics(t, func() { SyncWait(parent, g.Next(parent)) })
}

func TestGenerator_AbandonUnparksBody(t *testing.T) {
	parent := Background()
	started := make(chan struct{})
	observedCancel := make(chan error, 1)

	g := NewGenerator(parent, func(ctx Ctx, yield Yield[int]) error {
		close(started)
		err := yield(1)
		observedCancel <- err
		return err
	})

	_, err := SyncWait(parent, g.Next(parent))
	require.NoError(t, err)

	<-started
	g.abandon()

	select {
	case err := <-observedCancel:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("abandon did not unpark the generator body")
	}
}

func TestGenerator_AbandonIsIdempotent(t *testing.T) {
	parent := Background()
	g := NewGenerator(parent, func(ctx Ctx, yield Yield[int]) error { return nil })

	require.NotPanics(t, func() {
		g.abandon()
		g.abandon()
	})
}

func TestGenerator_ParentCleanupUnwindAbandonsStartedGenerator(t *testing.T) {
	parent := Background()
	observedCancel := make(chan error, 1)

	g := NewGenerator(parent, func(ctx Ctx, yield Yield[int]) error {
		observedCancel <- yield(1)
		return nil
	})

	_, err := SyncWait(parent, g.Next(parent))
	require.NoError(t, err)

	require.NoError(t, parent.Cleanup().Unwind())

	select {
	case err := <-observedCancel:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("unwinding the parent cleanup stack did not abandon the generator")
	}
}

func TestGenerator_AbandonedAfterOneOfThreeYieldsTearsDownBeforeParentUnwindReturns(t *testing.T) {
	parent := Background()
	tornDown := make(chan struct{})

	g := NewGenerator(parent, func(ctx Ctx, yield Yield[int]) error {
		defer close(tornDown)
		for i := 1; i <= 3; i++ {
			if err := yield(i); err != nil {
				return err
			}
		}
		return nil
	})

	v, err := SyncWait(parent, g.Next(parent))
	require.NoError(t, err)
	require.True(t, v.Ok)
	require.Equal(t, 1, v.Value)

	require.NoError(t, parent.Cleanup().Unwind())

	select {
	case <-tornDown:
	case <-time.After(time.Second):
		t.Fatal("generator body did not tear down after being abandoned mid-sequence")
	}
}
