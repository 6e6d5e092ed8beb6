// Package dskgrpc exposes google.golang.org/grpc unary and server-stream
// calls as dsk.Op/dsk.Generator values.
//
// Unary calls are grounded on the dsk.BlockingCall shape shared with
// dskredis/dskpg/dsks3: Initiate launches grpc.ClientConn.Invoke on its own
// goroutine and fails fast if the owning context's stop token is already
// requested.
//
// Server streams are grounded on
// joeycumines-go-utilpkg/inprocgrpc's context-propagation and stream
// lifecycle conventions (cancellation flows from the owning context to the
// RPC, never the reverse) generalized from its in-process channel onto a
// real network grpc.ClientConn, and demonstrate this module's generator
// machinery hosting a long-lived resource: NewServerStream opens the RPC
// once and yields one decoded message per call to Next, so a stream is
// driven the same way any other dsk.Generator is, including abandonment
// via the owning context's cleanup stack.
package dskgrpc
