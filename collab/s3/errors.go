package dsks3

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/go-dsk/dsk/errs"
)

// classifyError converts an S3/smithy error into this module's Kind
// taxonomy, generalizing
// dmitrymomot-foundation/integration/storage/s3/error.go's
// classifyS3Error from a per-operation sentinel table into Kind buckets.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.KindUnavailable, err)
	}
	if errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.KindCanceled, err)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return errs.Wrap(errs.KindNotFound, err)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return errs.Wrap(errs.KindNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket":
			return errs.Wrap(errs.KindNotFound, err)
		case "AccessDenied":
			return errs.Wrap(errs.KindInvalidInput, err)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return errs.Wrap(errs.KindUnavailable, err)
		default:
			return errs.Wrap(errs.KindDomain, err)
		}
	}

	return errs.Wrap(errs.KindDomain, err)
}
