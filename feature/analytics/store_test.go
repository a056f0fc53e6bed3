package analytics

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"aadhaar-records/core/metrics"
	"aadhaar-records/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const artifact = "date,state,district,pincode,age_0_5,age_5_17,age_18_greater,record_id\n" +
	"15-03-2024,UP,Gorakhpur,273001,10,4,1,ADHR-20240315-273001-D8B812\n" +
	"16-03-2024,UP,Gorakhpur, 273002 ,5,1,0,ADHR-20240316-273002-AAAAAA\n" +
	"16-03-2024,Delhi,New Delhi,110001,3,2,,ADHR-20240316-110001-BBBBBB\n"

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "processed_records.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_ReloadFromFile(t *testing.T) {
	store := NewStore(FileSource{Path: writeArtifact(t, artifact)}, zap.NewNop(), metrics.New())

	count, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	snap := store.Snapshot()
	assert.Equal(t, "273002", snap.Table.Rows[1]["pincode"])
	assert.True(t, snap.Numeric["age_0_5"])
	assert.True(t, snap.Numeric["age_18_greater"])
	assert.False(t, snap.Numeric["pincode"])
	assert.False(t, snap.Numeric["record_id"])
}

func TestStore_MissingArtifactIsSoft(t *testing.T) {
	store := NewStore(FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}, zap.NewNop(), nil)

	count, err := store.Reload(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, store.Snapshot().Len())
}

func TestStore_BrokenArtifactEmptiesSnapshot(t *testing.T) {
	path := writeArtifact(t, artifact)
	store := NewStore(FileSource{Path: path}, zap.NewNop(), nil)
	_, err := store.Reload(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2,3\n"), 0o644))
	_, err = store.Reload(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, store.Snapshot().Len())
}

func TestStore_ConcurrentReload(t *testing.T) {
	store := NewStore(FileSource{Path: writeArtifact(t, artifact)}, zap.NewNop(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := store.Reload(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 3, count)
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, store.Snapshot().Len())
}

func TestStore_ReloadFromStorage(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "aadhaar", "processed/processed_records.csv", mock.Anything).
			Return(minio.ObjectInfo{}, nil)
		client.On("GetObject", mock.Anything, "aadhaar", "processed/processed_records.csv", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(artifact))), nil)

		store := NewStore(StorageSource{Client: client, Bucket: "aadhaar", Object: "processed/processed_records.csv"}, zap.NewNop(), nil)
		count, err := store.Reload(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "aadhaar", "processed/processed_records.csv", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		store := NewStore(StorageSource{Client: client, Bucket: "aadhaar", Object: "processed/processed_records.csv"}, zap.NewNop(), nil)
		count, err := store.Reload(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "aadhaar", "processed/processed_records.csv", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("connection refused"))

		store := NewStore(StorageSource{Client: client, Bucket: "aadhaar", Object: "processed/processed_records.csv"}, zap.NewNop(), nil)
		_, err := store.Reload(context.Background())
		assert.ErrorContains(t, err, "connection refused")
	})
}
