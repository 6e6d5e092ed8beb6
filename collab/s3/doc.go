// Package dsks3 exposes github.com/aws/aws-sdk-go-v2/service/s3 object
// operations as dsk.Op values, grounded on
// dmitrymomot-foundation/integration/storage/s3 (storage.go's S3Client
// interface-for-testability pattern, error.go's classifyS3Error
// classification table).
//
// Every op is built on dsk.BlockingCall, so a stop-token request mid-flight
// cancels the underlying SDK call's derived context the same way it does
// for dskredis/dskpg/dskhttp. Upload additionally demonstrates
// stop-token-aware cancellation of a multipart transfer via
// github.com/aws/aws-sdk-go-v2/feature/s3/manager: aborting ctx mid-upload
// cancels in-flight part uploads instead of letting them run to
// completion and discarding the result.
package dsks3
