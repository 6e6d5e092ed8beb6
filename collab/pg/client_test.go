package dskpg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/go-dsk/dsk"
	"github.com/go-dsk/dsk/errs"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	stdCtx := context.Background()

	pgContainer, err := postgres.Run(stdCtx, "postgres:16-alpine",
		postgres.WithDatabase("dsktest"),
		postgres.WithUsername("dsk"),
		postgres.WithPassword("dsk"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgContainer) })

	connStr, err := pgContainer.ConnectionString(stdCtx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(stdCtx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(stdCtx, `CREATE TABLE widgets (id SERIAL PRIMARY KEY, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)

	return NewClient(pool)
}

func TestClient_ExecThenQueryRow(t *testing.T) {
	c := newTestClient(t)
	ctx := dsk.Background()

	tag, err := dsk.SyncWait(ctx, c.Exec("INSERT INTO widgets (name) VALUES ($1)", "sprocket"))
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())

	name, err := dsk.SyncWait(ctx, QueryRow(c, func(row pgx.Row) (string, error) {
		var name string
		return name, row.Scan(&name)
	}, "SELECT name FROM widgets WHERE id = $1", 1))
	require.NoError(t, err)
	require.Equal(t, "sprocket", name)
}

func TestClient_QueryRow_NoRowsIsNotFound(t *testing.T) {
	c := newTestClient(t)
	ctx := dsk.Background()

	_, err := dsk.SyncWait(ctx, QueryRow(c, func(row pgx.Row) (string, error) {
		var name string
		return name, row.Scan(&name)
	}, "SELECT name FROM widgets WHERE id = $1", 999))
	require.Error(t, err)
	require.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestClient_Exec_DuplicateKeyIsInvalidInput(t *testing.T) {
	c := newTestClient(t)
	ctx := dsk.Background()

	_, err := dsk.SyncWait(ctx, c.Exec("INSERT INTO widgets (name) VALUES ($1)", "sprocket"))
	require.NoError(t, err)

	_, err = dsk.SyncWait(ctx, c.Exec("INSERT INTO widgets (name) VALUES ($1)", "sprocket"))
	require.Error(t, err)
	require.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
}

func TestClient_TransactionPropagatesThroughContext(t *testing.T) {
	c := newTestClient(t)
	ctx := dsk.Background()

	tx, err := dsk.SyncWait(ctx, c.Begin())
	require.NoError(t, err)

	op := dsk.BlockingCall(func(stdCtx context.Context) (struct{}, error) {
		txCtx := WithTx(stdCtx, tx)
		fromCtx, ok := TxFromContext(txCtx)
		require.True(t, ok)
		_, err := fromCtx.Exec(txCtx, "INSERT INTO widgets (name) VALUES ($1)", "cog")
		return struct{}{}, err
	})
	_, err = dsk.SyncWait(ctx, op)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))

	name, err := dsk.SyncWait(ctx, QueryRow(c, func(row pgx.Row) (string, error) {
		var name string
		return name, row.Scan(&name)
	}, "SELECT name FROM widgets WHERE name = $1", "cog"))
	require.NoError(t, err)
	require.Equal(t, "cog", name)
}

func TestClient_Ping_Succeeds(t *testing.T) {
	c := newTestClient(t)
	ctx := dsk.Background()

	_, err := dsk.SyncWait(ctx, c.Ping())
	require.NoError(t, err)
}
