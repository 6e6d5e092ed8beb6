package dskpg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/go-dsk/dsk"
)

// Client wraps a *pgxpool.Pool, exposing query/exec/transaction operations
// as ops built on dsk.BlockingCall.
type Client struct {
	pool *pgxpool.Pool
}

// NewClient wraps pool.
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Exec returns an Op that runs sql and reports the command tag (row count,
// etc).
func (c *Client) Exec(sql string, args ...any) dsk.Op[pgconn.CommandTag] {
	return dsk.BlockingCall(func(ctx context.Context) (pgconn.CommandTag, error) {
		tag, err := c.pool.Exec(ctx, sql, args...)
		if err != nil {
			return pgconn.CommandTag{}, classifyError(err)
		}
		return tag, nil
	})
}

// QueryRow returns an Op that runs sql and hands the resulting row to scan,
// returning scan's decoded value. A no-rows result classifies as
// errs.KindNotFound via scan's returned pgx.ErrNoRows.
func QueryRow[T any](c *Client, scan func(pgx.Row) (T, error), sql string, args ...any) dsk.Op[T] {
	return dsk.BlockingCall(func(ctx context.Context) (T, error) {
		row := c.pool.QueryRow(ctx, sql, args...)
		v, err := scan(row)
		if err != nil {
			var zero T
			return zero, classifyError(err)
		}
		return v, nil
	})
}

// Begin returns an Op that starts a transaction. Callers attach it to the
// context threaded through subsequent ops with WithTx, and must Commit or
// Rollback it themselves — Begin does not manage its lifetime.
func (c *Client) Begin() dsk.Op[pgx.Tx] {
	return dsk.BlockingCall(func(ctx context.Context) (pgx.Tx, error) {
		tx, err := c.pool.Begin(ctx)
		if err != nil {
			return nil, classifyError(err)
		}
		return tx, nil
	})
}

// Ping returns an Op completing once the pool replies, backing a
// healthcheck the way dmitrymomot-foundation's Healthcheck does.
func (c *Client) Ping() dsk.Op[struct{}] {
	return dsk.BlockingCall(func(ctx context.Context) (struct{}, error) {
		if err := c.pool.Ping(ctx); err != nil {
			return struct{}{}, classifyError(err)
		}
		return struct{}{}, nil
	})
}
