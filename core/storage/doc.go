// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the reconciled artifact can be published to,
// and served from, AWS S3 or a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - Upload: Creates the bucket if missing and replaces an object with new content.
//   - Open: Streams an object, reporting ErrObjectNotFound when it does not exist.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	_, err = storage.Upload(ctx, client, "aadhaar", "processed/processed_records.csv", data, "text/csv")
package storage
