package dskhttp

import (
	"context"
	"errors"

	"github.com/go-dsk/dsk/errs"
)

// classifyError translates net/http-layer errors into the shared dsk/errs
// taxonomy, the same per-collaborator classification-table shape as
// foundation's storage/s3/error.go classifyS3Error.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.KindCanceled, err)
	}
	return errs.Wrap(errs.KindDomain, err)
}
