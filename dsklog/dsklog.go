// Package dsklog adapts log/slog as a github.com/joeycumines/logiface Event,
// the way that library expects host applications to wire it into their own
// logging backend (see the logiface-slog sibling package in the corpus for
// the full-featured, pooled version of the same idea). This one is
// intentionally small: one struct, one Write, enough to give the
// schedulers package a real structured-logging sink instead of hand-rolled
// fmt.Printf debugging.
package dsklog

import (
	"context"
	"time"

	"log/slog"

	"github.com/joeycumines/logiface"
)

// Event is a logiface.Event backed by a single slog.Record under
// construction. It is not pooled; this module logs at a low enough rate
// (scheduler lifecycle transitions, op panics, cancellation) that per-event
// allocation is not worth the complexity a pool adds.
type Event struct {
	logiface.UnimplementedEvent
	level logiface.Level
	attrs []slog.Attr
	msg   string
	err   error
}

func (e *Event) Level() logiface.Level { return e.level }

func (e *Event) AddField(key string, val any) {
	e.attrs = append(e.attrs, slog.Any(key, val))
}

func (e *Event) AddMessage(msg string) bool { e.msg = msg; return true }
func (e *Event) AddError(err error) bool    { e.err = err; return true }
func (e *Event) AddString(key, val string) bool {
	e.attrs = append(e.attrs, slog.String(key, val))
	return true
}
func (e *Event) AddInt(key string, val int) bool {
	e.attrs = append(e.attrs, slog.Int(key, val))
	return true
}
func (e *Event) AddDuration(key string, val time.Duration) bool {
	e.attrs = append(e.attrs, slog.Duration(key, val))
	return true
}
func (e *Event) AddBool(key string, val bool) bool {
	e.attrs = append(e.attrs, slog.Bool(key, val))
	return true
}

// Handler adapts an *slog.Logger into logiface.EventFactory and
// logiface.Writer, so it can be passed straight to logiface.New.
type Handler struct {
	sl  *slog.Logger
	ctx context.Context
}

// NewHandler builds a Handler writing through sl. A nil sl uses slog's
// current default logger.
func NewHandler(sl *slog.Logger) *Handler {
	if sl == nil {
		sl = slog.Default()
	}
	return &Handler{sl: sl, ctx: context.Background()}
}

func (h *Handler) NewEvent(level logiface.Level) *Event {
	return &Event{level: level}
}

func (h *Handler) Write(event *Event) error {
	lvl := toSlogLevel(event.level)
	if !h.sl.Enabled(h.ctx, lvl) {
		return logiface.ErrDisabled
	}
	attrs := event.attrs
	if event.err != nil {
		attrs = append(attrs, slog.Any("error", event.err))
	}
	h.sl.LogAttrs(h.ctx, lvl, event.msg, attrs...)
	return nil
}

func toSlogLevel(l logiface.Level) slog.Level {
	switch {
	case l >= logiface.LevelDebug:
		return slog.LevelDebug
	case l >= logiface.LevelInformational:
		return slog.LevelInfo
	case l >= logiface.LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// New builds a ready-to-use *logiface.Logger[*Event] writing through sl.
func New(sl *slog.Logger) *logiface.Logger[*Event] {
	h := NewHandler(sl)
	return logiface.New[*Event](
		logiface.WithEventFactory[*Event](logiface.EventFactoryFunc[*Event](h.NewEvent)),
		logiface.WithWriter[*Event](logiface.WriterFunc[*Event](h.Write)),
		logiface.WithLevel[*Event](logiface.LevelInformational),
	)
}

// Discard is a logger that never writes, for code paths (like the default
// scheduler options) that want a valid, nil-safe logger without
// configuring a sink.
func Discard() *logiface.Logger[*Event] {
	return logiface.New[*Event](
		logiface.WithLevel[*Event](logiface.LevelDisabled),
	)
}
