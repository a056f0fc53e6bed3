package table

import (
	"strings"

	"aadhaar-records/core/utils"
)

// Row maps a normalized column name to its cell value.
// A column absent from the map is missing for that row.
type Row map[string]string

// Get returns the cell for col and whether it is present.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows sharing a column set.
// Columns keeps first-appearance order and drives serialization.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// HasColumn reports whether col is part of the column set.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// AddColumn appends col to the column set if it is not already present.
// It returns true when the column was added.
func (t *Table) AddColumn(col string) bool {
	if t.HasColumn(col) {
		return false
	}
	t.Columns = append(t.Columns, col)
	return true
}

// Concat stacks tables vertically. The result carries the union of columns
// in first-appearance order; rows keep only the cells they had.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			out.AddColumn(c)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

// NumericColumns returns the columns whose non-missing values all parse as
// numbers. A column with no values at all counts as numeric.
func (t *Table) NumericColumns(exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	var numeric []string
	for _, col := range t.Columns {
		if _, ok := skip[col]; ok {
			continue
		}
		isNumeric := true
		for _, row := range t.Rows {
			v, ok := row[col]
			if !ok {
				continue
			}
			if !utils.IsNumeric(v) {
				isNumeric = false
				break
			}
		}
		if isNumeric {
			numeric = append(numeric, col)
		}
	}
	return numeric
}

// FillMissing sets value on every row missing one of cols.
// It returns the number of cells filled.
func (t *Table) FillMissing(cols []string, value string) int {
	filled := 0
	for _, row := range t.Rows {
		for _, col := range cols {
			if _, ok := row[col]; !ok {
				row[col] = value
				filled++
			}
		}
	}
	return filled
}

// Record renders a row in column order. Missing cells become "".
func (t *Table) Record(row Row) []string {
	rec := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		rec[i] = row[col]
	}
	return rec
}

// NormalizeColumn trims and lowercases a column name.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
