// Package dskhttp exposes net/http's client and server primitives as
// dsk.Op values, the "Reactors ... expose each I/O primitive as an async
// op" collaborator named in SPEC_FULL.md.
//
// Client calls (Get, Do) run the blocking http.Client call on a goroutine
// and resume the caller's continuation when the response (or error)
// arrives, the same blocking-call-as-op shape dskredis/dskpg/dsks3 use. Serve wraps a *http.Server as a long-lived Op[struct{}] that
// completes when the server shuts down, grounded on the teacher's
// dispatcher.go in-flight accounting (one tracked goroutine per connection
// here instead of per task) and lifecycle.go's single-Close-sequence
// shutdown ordering.
//
// ParseSingleRangeHeader and Range.Resolve are a direct port of the original
// implementation's range_header.hpp, kept beside the HTTP client/server
// because parsing a Range request header is the one piece of this
// collaborator's surface that has nothing to do with dsk.Op composition.
package dskhttp
