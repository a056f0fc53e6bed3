package records

import (
	"bytes"
	"context"
	"fmt"

	"aadhaar-records/core/table"

	"go.uber.org/zap"
)

// Materializer renders a table to CSV once and hands it to every sink.
// Mirrors are written before the primary artifact, so a failing mirror
// leaves the previous artifact in place.
type Materializer struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewMaterializer creates a materializer writing to each mirror, then to primary.
func NewMaterializer(logger *zap.Logger, primary Sink, mirrors ...Sink) *Materializer {
	sinks := make([]Sink, 0, len(mirrors)+1)
	sinks = append(sinks, mirrors...)
	return &Materializer{
		sinks:  append(sinks, primary),
		logger: logger,
	}
}

// Materialize persists t. Any sink failure aborts the run.
func (m *Materializer) Materialize(ctx context.Context, t *table.Table) error {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, t); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	encoded := buf.Bytes()

	for _, sink := range m.sinks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Write(ctx, t, encoded); err != nil {
			return fmt.Errorf("%s sink: %w", sink.Name(), err)
		}
		m.logger.Debug("Sink written", zap.String("sink", sink.Name()))
	}

	fields := []zap.Field{
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.Columns)),
		zap.Int("bytes", len(encoded)),
	}
	if sample := Sample(t); sample != nil {
		fields = append(fields, zap.Any("sample", sample))
	}
	m.logger.Info("Processing complete", fields...)

	return nil
}

// Sample returns the first row with missing cells as "", or nil for an empty table.
func Sample(t *table.Table) map[string]string {
	if t.Empty() {
		return nil
	}
	record := t.Record(t.Rows[0])
	sample := make(map[string]string, len(t.Columns))
	for i, col := range t.Columns {
		sample[col] = record[i]
	}
	return sample
}
