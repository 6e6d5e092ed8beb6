package dsk

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStopSource_RequestIsIdempotentAndOneShot(t *testing.T) {
	s := NewStopSource()
	require.False(t, s.Requested())

	var fired int32
	s.OnStop(func() { atomic.AddInt32(&fired, 1) })

	s.Request()
	s.Request()
	s.Request()

	require.True(t, s.Requested())
	require.EqualValues(t, 1, atomic.LoadInt32(&fired))
}

func TestStopSource_OnStopAfterRequestFiresSynchronously(t *testing.T) {
	s := NewStopSource()
	s.Request()

	var fired bool
	s.OnStop(func() { fired = true })
	require.True(t, fired, "callback registered after Request must fire inline before OnStop returns")
}

func TestStopSource_DeregisterBeforeFire(t *testing.T) {
	s := NewStopSource()
	var fired bool
	h := s.OnStop(func() { fired = true })
	h.Deregister()
	s.Request()
	require.False(t, fired)
}

func TestStopToken_ZeroValueNeverRequested(t *testing.T) {
	var tok StopToken
	require.False(t, tok.Requested())
	require.Nil(t, tok.Done())
}

func TestStopToken_DoneClosesOnRequest(t *testing.T) {
	s := NewStopSource()
	tok := s.Token()

	select {
	case <-tok.Done():
		t.Fatal("token should not be done yet")
	default:
	}

	s.Request()

	select {
	case <-tok.Done():
	case <-time.After(time.Second):
		t.Fatal("token did not observe Request")
	}
}

func TestStdContext_CanceledByToken(t *testing.T) {
	s := NewStopSource()
	ctx := StdContext(nil, s.Token())

	require.NoError(t, ctx.Err())

	s.Request()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("StdContext did not become done after stop token fired")
	}
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}
