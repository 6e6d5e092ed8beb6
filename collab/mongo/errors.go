package dskmongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/go-dsk/dsk/errs"
)

// classifyError maps a mongo-driver error onto this module's Kind
// taxonomy.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return errs.Wrap(errs.KindNotFound, err)
	case errors.Is(err, context.Canceled):
		return errs.Wrap(errs.KindCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.Wrap(errs.KindUnavailable, err)
	case mongo.IsDuplicateKeyError(err):
		return errs.Wrap(errs.KindInvalidInput, err)
	default:
		return errs.Wrap(errs.KindDomain, err)
	}
}
