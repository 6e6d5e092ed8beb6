package dsks3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/go-dsk/dsk"
)

// API is the subset of *s3.Client's methods this package exercises,
// narrowed the way dmitrymomot-foundation/integration/storage/s3's
// S3Client interface is, so tests can substitute a fake without standing
// up a real bucket.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Client wraps an API implementation bound to one bucket.
type Client struct {
	api    API
	bucket string
}

// NewClient wraps api for the given bucket.
func NewClient(api API, bucket string) *Client {
	return &Client{api: api, bucket: bucket}
}

// Put returns an Op that uploads body under key in a single request.
func (c *Client) Put(key string, body io.Reader, contentType string) dsk.Op[struct{}] {
	return dsk.BlockingCall(func(ctx context.Context) (struct{}, error) {
		_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(c.bucket),
			Key:         aws.String(key),
			Body:        body,
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return struct{}{}, classifyError(err)
		}
		return struct{}{}, nil
	})
}

// Get returns an Op resolving to the object's body. The caller must Close
// it.
func (c *Client) Get(key string) dsk.Op[io.ReadCloser] {
	return dsk.BlockingCall(func(ctx context.Context) (io.ReadCloser, error) {
		out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, classifyError(err)
		}
		return out.Body, nil
	})
}

// Head returns an Op resolving to the object's size, without downloading
// its body.
func (c *Client) Head(key string) dsk.Op[int64] {
	return dsk.BlockingCall(func(ctx context.Context) (int64, error) {
		out, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return 0, classifyError(err)
		}
		return aws.ToInt64(out.ContentLength), nil
	})
}

// Delete returns an Op that removes key.
func (c *Client) Delete(key string) dsk.Op[struct{}] {
	return dsk.BlockingCall(func(ctx context.Context) (struct{}, error) {
		_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return struct{}{}, classifyError(err)
		}
		return struct{}{}, nil
	})
}

// Upload returns an Op that uploads body under key via manager.Uploader,
// splitting into concurrent multipart requests for large bodies.
// Cancellation through the owning Ctx's stop token aborts any in-flight
// part uploads rather than letting them complete and discarding the
// result.
func Upload(uploader *manager.Uploader, bucket, key string, body io.Reader, contentType string) dsk.Op[struct{}] {
	return dsk.BlockingCall(func(ctx context.Context) (struct{}, error) {
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        body,
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return struct{}{}, classifyError(err)
		}
		return struct{}{}, nil
	})
}
