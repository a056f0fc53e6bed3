package records

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"aadhaar-records/core/database"
	"aadhaar-records/core/storage"
	"aadhaar-records/core/table"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sink persists a materialized table.
// encoded holds the CSV rendering of t, shared by all sinks of one run.
type Sink interface {
	Name() string
	Write(ctx context.Context, t *table.Table, encoded []byte) error
}

// FileSink writes the CSV artifact to a local path.
// The previous artifact is replaced atomically through a temp file and rename.
type FileSink struct {
	Path string
}

// NewFileSink creates a sink for path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (s *FileSink) Name() string { return "file" }

func (s *FileSink) Write(ctx context.Context, t *table.Table, encoded []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.Path, err)
	}
	return nil
}

// StorageSink uploads the CSV artifact to object storage.
type StorageSink struct {
	client storage.Client
	bucket string
	object string
	logger *zap.Logger
}

// NewStorageSink creates a sink publishing to bucket/object.
func NewStorageSink(client storage.Client, bucket, object string, logger *zap.Logger) *StorageSink {
	return &StorageSink{client: client, bucket: bucket, object: object, logger: logger}
}

func (s *StorageSink) Name() string { return "storage" }

func (s *StorageSink) Write(ctx context.Context, t *table.Table, encoded []byte) error {
	info, err := storage.Upload(ctx, s.client, s.bucket, s.object, encoded, "text/csv")
	if err != nil {
		return err
	}
	s.logger.Info("Artifact published",
		zap.String("bucket", s.bucket),
		zap.String("object", s.object),
		zap.Int64("size", info.Size),
	)
	return nil
}

// DatabaseSink mirrors the table into a SQL table, replacing it on every run.
type DatabaseSink struct {
	db     *gorm.DB
	table  string
	logger *zap.Logger
}

// NewDatabaseSink creates a sink mirroring into tableName.
func NewDatabaseSink(db *gorm.DB, tableName string, logger *zap.Logger) *DatabaseSink {
	return &DatabaseSink{db: db, table: tableName, logger: logger}
}

func (s *DatabaseSink) Name() string { return "database" }

func (s *DatabaseSink) Write(ctx context.Context, t *table.Table, encoded []byte) error {
	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		values := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			if v, ok := row.Get(col); ok {
				values[j] = v
			}
		}
		rows[i] = values
	}

	db := s.db.WithContext(ctx)
	if err := database.ReplaceTable(db, s.table, t.Columns, rows); err != nil {
		return err
	}

	columns, err := database.GetTableColumns(db, s.table)
	if err != nil {
		s.logger.Warn("Failed to inspect mirror table", zap.String("table", s.table), zap.Error(err))
		return nil
	}

	s.logger.Info("Mirror table replaced",
		zap.String("table", s.table),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(columns)),
	)
	return nil
}
