// Package dsk implements an asynchronous execution core: a unified model of
// async operations, tasks, continuations, schedulers, resumers, cancellation
// propagation, and scoped async cleanup.
//
// # Shape
//
// An [Op] is anything that can be initiated once and, eventually, yields a
// [Result]. A [Task] hosts an Op on its own goroutine and lets you [Await]
// other Ops from inside it, the way a coroutine awaits sub-operations. A
// [Ctx] carries the triple every Op needs to cooperate with the rest of the
// tree: the [Resumer] completions should be delivered on, the [StopSource]
// cancellation flows through, and the [CleanupStack] that must unwind on
// scope exit.
//
// # Collaborators
//
// Everything outside this package — HTTP, compression, Redis, Postgres,
// Mongo, S3, gRPC — is a thin adapter exposing the same four-operation
// contract: [Op.IsImmediate], [Op.Initiate], [Op.IsFailed], [Op.TakeResult].
// The core never imports them; they import the core.
//
// # Non-goals
//
// This is not a general executor framework with work-stealing guarantees,
// not a structured-concurrency standard (Go cannot express borrowed stack
// lifetimes, so nursery-safety here is a documented convention rather than
// a compiler-enforced one), not a fairness scheduler, and not a network
// library.
package dsk
