package analytics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"aadhaar-records/core/metrics"
	"aadhaar-records/core/storage"
	"aadhaar-records/core/table"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrArtifactMissing is returned by a Source when no artifact has been produced yet.
var ErrArtifactMissing = errors.New("artifact not found")

// textColumns are never treated as numbers in responses.
var textColumns = []string{"date", "state", "district", "pincode", "record_id"}

// Source opens the reconciled artifact.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads the artifact from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.Path, ErrArtifactMissing)
	}
	return f, err
}

// StorageSource reads the artifact from object storage.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Object string
}

func (s StorageSource) Name() string { return "storage:" + s.Bucket + "/" + s.Object }

func (s StorageSource) Open(ctx context.Context) (io.ReadCloser, error) {
	r, err := storage.Open(ctx, s.Client, s.Bucket, s.Object)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrArtifactMissing, err)
	}
	return r, err
}

// Snapshot is an immutable view of the loaded artifact.
// Callers must not modify the table.
type Snapshot struct {
	Table    *table.Table
	Numeric  map[string]bool
	LoadedAt time.Time
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return s.Table.Len()
}

// NewSnapshot prepares t for querying: pincode values are trimmed strings and
// columns holding only numbers are marked numeric.
func NewSnapshot(t *table.Table) *Snapshot {
	if t == nil {
		t = &table.Table{}
	}
	for _, row := range t.Rows {
		if v, ok := row["pincode"]; ok {
			row["pincode"] = strings.TrimSpace(v)
		}
	}

	numeric := make(map[string]bool)
	for _, col := range t.NumericColumns(textColumns...) {
		numeric[col] = true
	}
	return &Snapshot{Table: t, Numeric: numeric, LoadedAt: time.Now()}
}

// Store owns the snapshot served by the query API.
// Readers get the current snapshot; Reload swaps in a new one.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot

	source  Source
	group   singleflight.Group
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewStore creates an empty store reading from source. m may be nil.
func NewStore(source Source, logger *zap.Logger, m *metrics.Metrics) *Store {
	return &Store{
		current: NewSnapshot(nil),
		source:  source,
		logger:  logger,
		metrics: m,
	}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace installs t as the current snapshot.
func (s *Store) Replace(t *table.Table) {
	snap := NewSnapshot(t)
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordsLoaded(snap.Len())
	}
}

// Reload re-reads the artifact and returns the new record count.
// Concurrent calls share a single read. A missing artifact installs an empty
// snapshot without error; a read failure installs an empty snapshot and
// returns the error.
func (s *Store) Reload(ctx context.Context) (int, error) {
	v, err, _ := s.group.Do("reload", func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *Store) load(ctx context.Context) (int, error) {
	l := s.logger.With(zap.String("source", s.source.Name()))

	t, err := s.read(ctx)
	if err != nil {
		s.Replace(nil)
		if s.metrics != nil {
			s.metrics.ReloadFailed()
		}
		if errors.Is(err, ErrArtifactMissing) {
			l.Warn("Processed data not found, serving empty data set. Run the process command first.")
			return 0, nil
		}
		l.Warn("Failed to load processed data", zap.Error(err))
		return 0, err
	}

	s.Replace(t)
	if s.metrics != nil {
		s.metrics.ReloadSucceeded(time.Now())
	}
	l.Info("Data loaded", zap.Int("records", t.Len()))
	return t.Len(), nil
}

func (s *Store) read(ctx context.Context) (*table.Table, error) {
	r, err := s.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	t, err := table.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	return t, nil
}
