// Package dskredis exposes github.com/redis/go-redis/v9 commands as
// dsk.Op values, grounded on
// dmitrymomot-foundation/integration/database/redis (doc.go's
// Connect/Healthcheck usage pattern, errors.go's namespaced-sentinel
// error style).
//
// Every command op is built on dsk.BlockingCall: Initiate launches the
// go-redis call on its own goroutine and resumes the continuation when it
// returns, failing fast if the owning context's stop token is already
// requested. classifyError collapses go-redis's error surface (redis.Nil,
// context cancellation, everything else) into this module's Kind
// taxonomy the way errors.go collapses connection failures into named
// sentinels.
package dskredis
