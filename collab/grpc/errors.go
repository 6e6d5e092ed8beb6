package dskgrpc

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-dsk/dsk/errs"
)

// classifyError maps a gRPC status error onto this module's Kind
// taxonomy.
func classifyError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.KindCanceled, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.KindUnavailable, err)
	}

	switch status.Code(err) {
	case codes.Canceled:
		return errs.Wrap(errs.KindCanceled, err)
	case codes.NotFound:
		return errs.Wrap(errs.KindNotFound, err)
	case codes.InvalidArgument, codes.FailedPrecondition:
		return errs.Wrap(errs.KindInvalidInput, err)
	case codes.DeadlineExceeded, codes.Unavailable, codes.ResourceExhausted:
		return errs.Wrap(errs.KindUnavailable, err)
	default:
		return errs.Wrap(errs.KindDomain, err)
	}
}
