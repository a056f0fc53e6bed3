package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"aadhaar-records/core/storage"
	"aadhaar-records/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	t.Run("CreatesMissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "aadhaar").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "aadhaar", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "aadhaar", "out.csv", mock.Anything, int64(3), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "text/csv"
		})).Return(minio.UploadInfo{Key: "out.csv", Size: 3}, nil)

		info, err := storage.Upload(context.Background(), client, "aadhaar", "out.csv", []byte("a,b"), "text/csv")
		require.NoError(t, err)
		assert.Equal(t, int64(3), info.Size)
		client.AssertExpectations(t)
	})

	t.Run("PutFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "aadhaar").Return(true, nil)
		client.On("PutObject", mock.Anything, "aadhaar", "out.csv", mock.Anything, int64(1), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("disk full"))

		_, err := storage.Upload(context.Background(), client, "aadhaar", "out.csv", []byte("a"), "text/csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BucketCheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "aadhaar").Return(false, errors.New("refused"))

		_, err := storage.Upload(context.Background(), client, "aadhaar", "out.csv", nil, "text/csv")
		assert.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "aadhaar", "out.csv", mock.Anything).Return(minio.ObjectInfo{Key: "out.csv"}, nil)
		client.On("GetObject", mock.Anything, "aadhaar", "out.csv", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("a,b\n"))), nil)

		rc, err := storage.Open(context.Background(), client, "aadhaar", "out.csv")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n", string(data))
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "aadhaar", "out.csv", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		_, err := storage.Open(context.Background(), client, "aadhaar", "out.csv")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
