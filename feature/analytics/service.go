package analytics

import (
	"math"
	"sort"
	"strings"

	"aadhaar-records/core/table"
	"aadhaar-records/core/utils"

	"go.uber.org/zap"
)

// Age columns produced by the enrolment dataset.
const (
	ColumnAge0To5      = "age_0_5"
	ColumnAge5To17     = "age_5_17"
	ColumnAge18Greater = "age_18_greater"
)

var ageColumns = []string{ColumnAge0To5, ColumnAge5To17, ColumnAge18Greater}

// Health is the liveness payload.
type Health struct {
	Status       string `json:"status" example:"ok"`
	RecordsCount int    `json:"records_count" example:"1024"`
}

// Summary holds nationwide age bucket totals.
type Summary struct {
	Age0To5   int64 `json:"age_0_5"`
	Age5To17  int64 `json:"age_5_17"`
	Age18Plus int64 `json:"age_18_plus"`
	Total     int64 `json:"total"`
}

// GeoRow is one (state, district) group with the summed age columns.
type GeoRow map[string]any

// Service answers read-only analytics queries over the store.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new analytics service.
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Store returns the backing store.
func (s *Service) Store() *Store {
	return s.store
}

// Health reports the number of loaded records.
func (s *Service) Health() Health {
	return Health{Status: "ok", RecordsCount: s.store.Snapshot().Len()}
}

// Summary sums the age buckets over every record.
// It returns false when no data is loaded. Absent columns count as zero.
func (s *Service) Summary() (*Summary, bool) {
	snap := s.store.Snapshot()
	if snap.Len() == 0 {
		return nil, false
	}

	sums := make(map[string]float64, len(ageColumns))
	for _, row := range snap.Table.Rows {
		for _, col := range ageColumns {
			if v, ok := utils.ToFloat(row[col]); ok {
				sums[col] += v
			}
		}
	}

	summary := &Summary{
		Age0To5:   int64(sums[ColumnAge0To5]),
		Age5To17:  int64(sums[ColumnAge5To17]),
		Age18Plus: int64(sums[ColumnAge18Greater]),
	}
	summary.Total = summary.Age0To5 + summary.Age5To17 + summary.Age18Plus
	return summary, true
}

// Geo groups records by (state, district) and sums the age columns present.
// A non-empty state keeps only exact matches. Groups are sorted by state,
// then district.
func (s *Service) Geo(state string) []GeoRow {
	snap := s.store.Snapshot()
	if snap.Len() == 0 {
		return []GeoRow{}
	}

	var cols []string
	for _, col := range ageColumns {
		if snap.Table.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return []GeoRow{}
	}

	type groupKey struct{ state, district string }
	sums := make(map[groupKey][]float64)
	var keys []groupKey

	for _, row := range snap.Table.Rows {
		if state != "" && row["state"] != state {
			continue
		}
		k := groupKey{state: row["state"], district: row["district"]}
		acc, ok := sums[k]
		if !ok {
			acc = make([]float64, len(cols))
			sums[k] = acc
			keys = append(keys, k)
		}
		for i, col := range cols {
			if v, ok := utils.ToFloat(row[col]); ok {
				acc[i] += v
			}
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].state != keys[j].state {
			return keys[i].state < keys[j].state
		}
		return keys[i].district < keys[j].district
	})

	out := make([]GeoRow, 0, len(keys))
	for _, k := range keys {
		row := GeoRow{"state": k.state, "district": k.district}
		for i, col := range cols {
			row[col] = number(sums[k][i])
		}
		out = append(out, row)
	}
	return out
}

// Search returns up to limit records whose pincode contains the query,
// in artifact order. Missing cells are rendered as "".
func (s *Service) Search(pincode string, limit int) []map[string]any {
	snap := s.store.Snapshot()
	out := []map[string]any{}
	if snap.Len() == 0 || !snap.Table.HasColumn("pincode") || limit <= 0 {
		return out
	}

	for _, row := range snap.Table.Rows {
		if !strings.Contains(row["pincode"], pincode) {
			continue
		}
		out = append(out, render(snap, row))
		if len(out) == limit {
			break
		}
	}
	return out
}

func render(snap *Snapshot, row table.Row) map[string]any {
	record := make(map[string]any, len(snap.Table.Columns))
	for _, col := range snap.Table.Columns {
		v, ok := row[col]
		if !ok {
			record[col] = ""
			continue
		}
		if snap.Numeric[col] {
			if n, ok := utils.ToNumber(v); ok {
				record[col] = n
				continue
			}
		}
		record[col] = v
	}
	return record
}

// number renders whole sums as integers.
func number(v float64) any {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int64(v)
	}
	return v
}
