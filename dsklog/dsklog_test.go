package dsklog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type capturingHandler struct {
	records []slog.Record
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(string) slog.Handler      { return h }

func TestNew_WritesThroughSlog(t *testing.T) {
	cap := &capturingHandler{}
	logger := New(slog.New(cap))

	logger.Notice().Str("key", "value").Log("hello")

	require.Len(t, cap.records, 1)
	require.Equal(t, "hello", cap.records[0].Message)
}

func TestNew_BelowThresholdIsNotWritten(t *testing.T) {
	cap := &capturingHandler{}
	logger := New(slog.New(cap))

	logger.Trace().Log("should not appear")

	require.Empty(t, cap.records)
}

func TestDiscard_NeverInvokesWriter(t *testing.T) {
	logger := Discard()
	require.NotPanics(t, func() {
		logger.Err().Str("k", "v").Log("should be discarded silently")
	})
}
