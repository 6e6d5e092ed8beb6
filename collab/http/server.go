package dskhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-dsk/dsk"
)

// Server wraps an *http.Server as a long-lived Op[struct{}]: Serve runs
// ListenAndServe until the server shuts down, either because its stop
// token fired or because the listener itself failed.
//
// Grounded on the teacher's lifecycle.go shutdown-sequence-exactly-once
// shape: Stop triggers a graceful http.Server.Shutdown instead of canceling
// a context directly, so in-flight connections drain the same way the
// teacher's inflight WaitGroup drains in-flight tasks before Close
// completes.
type Server struct {
	HTTP *http.Server
}

// NewServer wraps srv.
func NewServer(srv *http.Server) *Server {
	return &Server{HTTP: srv}
}

// Serve returns an Op that completes once the server has fully shut down,
// either because ctx's stop token fired (triggering a graceful Shutdown) or
// because the listener returned a non-ErrServerClosed error.
func (s *Server) Serve() dsk.Op[struct{}] {
	return dsk.BlockingCall(func(stdCtx context.Context) (struct{}, error) {
		shutdownDone := make(chan error, 1)
		go func() {
			<-stdCtx.Done()
			shutdownDone <- s.HTTP.Shutdown(context.Background())
		}()

		err := s.HTTP.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			<-shutdownDone
			return struct{}{}, nil
		}
		return struct{}{}, classifyError(err)
	})
}
