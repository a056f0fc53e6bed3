package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when the requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Upload writes data to bucket/objectName, creating the bucket first if needed.
// An existing object with the same name is replaced.
func Upload(ctx context.Context, client Client, bucket, objectName string, data []byte, contentType string) (minio.UploadInfo, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return minio.UploadInfo{}, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	info, err := client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return info, nil
}

// Open returns a reader for bucket/objectName.
// A missing object yields ErrObjectNotFound.
func Open(ctx context.Context, client Client, bucket, objectName string) (io.ReadCloser, error) {
	if _, err := client.StatObject(ctx, bucket, objectName, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s/%s: %w", bucket, objectName, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", objectName, err)
	}

	obj, err := client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", objectName, err)
	}
	return obj, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	default:
		return false
	}
}
