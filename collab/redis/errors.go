package dskredis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/go-dsk/dsk/errs"
)

// classifyError maps a go-redis error onto this module's Kind taxonomy,
// the same kind of translation table as
// dmitrymomot-foundation/integration/database/redis/errors.go, generalized
// from per-operation sentinels into Kind buckets.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, redis.Nil):
		return errs.Wrap(errs.KindNotFound, err)
	case errors.Is(err, context.Canceled):
		return errs.Wrap(errs.KindCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.Wrap(errs.KindUnavailable, err)
	default:
		return errs.Wrap(errs.KindDomain, err)
	}
}
