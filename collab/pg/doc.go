// Package dskpg exposes github.com/jackc/pgx/v5 pool operations as dsk.Op
// values, grounded on dmitrymomot-foundation/integration/database/pg
// (context.go's WithTx/TxFromContext transaction-propagation helpers,
// doc.go's error-classification-function usage).
//
// Exec, QueryRow and Begin are all built on dsk.BlockingCall, matching
// dskredis and dskhttp: each launches the pgx call on its own goroutine and
// fails fast if the owning context's stop token is already requested.
// WithTx/TxFromContext are carried over near verbatim: they operate on the
// plain context.Context that dsk.BlockingCall threads into every call, so
// repository code reached from inside an Op can participate in the same
// transaction across several calls without threading a *pgx.Tx through
// every signature.
package dskpg
