// Package table holds the in-memory logical table shared by the pipeline and
// the query service, plus the readers and writers that move it to and from disk.
//
// # Model
//
// A Table is an ordered list of Rows with a column list kept in first-appearance
// order. A Row is a map from normalized column name to cell text; a column that
// is absent from the map is missing for that row. Empty cells in source files are
// read as missing, which is what the numeric classification relies on.
//
// # Loading
//
// ReadDir scans one directory (no recursion) for .csv and .xlsx files, parses
// each one, normalizes the header names (trimmed, lowercased) and stacks the
// results into one table with the union of all columns. A file that fails to
// parse is logged and skipped; a directory without tabular files yields an empty
// table and a warning.
//
// # Usage
//
//	t, report := table.ReadDir("data/enrolment", log)
//	if t.Empty() {
//	    log.Warn("nothing loaded", zap.Int("failed", len(report.Failed)))
//	}
//
//	err := table.WriteCSV(w, t)
package table
