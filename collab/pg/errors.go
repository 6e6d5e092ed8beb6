package dskpg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/go-dsk/dsk/errs"
)

// pgConstraintViolation names the subset of PostgreSQL SQLSTATE classes
// this module re-surfaces as KindInvalidInput, the same shape as
// dmitrymomot-foundation/integration/database/pg's
// IsDuplicateKeyError/IsForeignKeyViolationError helpers, generalized into
// one table lookup instead of a function per code.
var pgConstraintViolation = map[string]bool{
	"23505": true, // unique_violation
	"23503": true, // foreign_key_violation
	"23502": true, // not_null_violation
	"23514": true, // check_violation
}

// classifyError maps a pgx error onto this module's Kind taxonomy.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errs.Wrap(errs.KindNotFound, err)
	case errors.Is(err, context.Canceled):
		return errs.Wrap(errs.KindCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.Wrap(errs.KindUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgConstraintViolation[pgErr.Code] {
		return errs.Wrap(errs.KindInvalidInput, err)
	}

	return errs.Wrap(errs.KindDomain, err)
}
