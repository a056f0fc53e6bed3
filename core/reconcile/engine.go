package reconcile

import (
	"fmt"
	"strings"

	"aadhaar-records/core/table"
)

// numericFill is the value written into missing numeric cells.
const numericFill = "0"

// ReconcileAll outer-joins every source onto the anchor on spec.Keys.
// Empty optional sources are skipped. Once all joins are done, numeric-only
// columns have their missing cells set to zero and the key columns are
// coerced to plain strings on every row.
func ReconcileAll(spec *Spec) (*table.Table, *Report, error) {
	if len(spec.Sources) == 0 {
		return nil, nil, ErrNoSources
	}

	anchor := spec.Sources[0]
	if anchor.Table.Empty() {
		return nil, nil, fmt.Errorf("%s: %w", anchor.Name, ErrAnchorEmpty)
	}

	report := &Report{Anchor: anchor.Name}
	result := copyTable(anchor.Table)

	for _, src := range spec.Sources[1:] {
		if src.Table.Empty() {
			report.Skipped = append(report.Skipped, src.Name)
			continue
		}

		stage := StageReport{
			Source:    src.Name,
			LeftRows:  result.Len(),
			RightRows: src.Table.Len(),
		}
		result, stage.Matched, stage.Renamed = OuterJoin(result, src.Table, spec.Keys, src.Suffix)
		stage.Rows = result.Len()
		report.Stages = append(report.Stages, stage)
	}

	// Classification must see the rows of every source at once.
	report.NumericColumns = result.NumericColumns(spec.Keys...)
	report.FilledCells = result.FillMissing(report.NumericColumns, numericFill)

	coerceKeys(result, spec.Keys)
	report.Rows = result.Len()

	return result, report, nil
}

// OuterJoin merges right onto left on keys, keeping every row of both sides.
// Each left row is paired with every right row sharing its key; right rows
// without a partner are appended afterwards in their original order.
// Non-key right columns that collide with a left column are renamed by
// appending suffix ("_right" when suffix is empty). It returns the joined
// table, the number of right rows that matched and the applied renames.
func OuterJoin(left, right *table.Table, keys []string, suffix string) (*table.Table, int, map[string]string) {
	out := table.New(left.Columns...)
	for _, k := range keys {
		out.AddColumn(k)
	}

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	if suffix == "" {
		suffix = "_right"
	}

	// Resolve output names for the right side's non-key columns.
	rightNames := make(map[string]string, len(right.Columns))
	renamed := make(map[string]string)
	for _, col := range right.Columns {
		if isKey[col] {
			continue
		}
		name := col
		for out.HasColumn(name) {
			name += suffix
		}
		out.AddColumn(name)
		rightNames[col] = name
		if name != col {
			renamed[col] = name
		}
	}

	index := make(map[string][]int, right.Len())
	for i, row := range right.Rows {
		k := keyOf(row, keys)
		index[k] = append(index[k], i)
	}

	matched := make([]bool, right.Len())
	for _, lrow := range left.Rows {
		partners := index[keyOf(lrow, keys)]
		if len(partners) == 0 {
			out.Rows = append(out.Rows, lrow.Clone())
			continue
		}
		for _, j := range partners {
			row := lrow.Clone()
			copyCells(row, right.Rows[j], rightNames)
			out.Rows = append(out.Rows, row)
			matched[j] = true
		}
	}

	matchedCount := 0
	for j, rrow := range right.Rows {
		if matched[j] {
			matchedCount++
			continue
		}
		row := make(table.Row, len(rrow))
		for _, k := range keys {
			if v, ok := rrow[k]; ok {
				row[k] = v
			}
		}
		copyCells(row, rrow, rightNames)
		out.Rows = append(out.Rows, row)
	}

	return out, matchedCount, renamed
}

// keyOf builds the composite join key of a row. Missing components compare
// as empty strings.
func keyOf(row table.Row, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strings.TrimSpace(row[k])
	}
	return strings.Join(parts, "\x1f")
}

func copyCells(dst, src table.Row, names map[string]string) {
	for col, name := range names {
		if v, ok := src[col]; ok {
			dst[name] = v
		}
	}
}

// coerceKeys gives every row a trimmed string value for each key column.
func coerceKeys(t *table.Table, keys []string) {
	for _, k := range keys {
		t.AddColumn(k)
	}
	for _, row := range t.Rows {
		for _, k := range keys {
			row[k] = strings.TrimSpace(row[k])
		}
	}
}

func copyTable(t *table.Table) *table.Table {
	out := table.New(t.Columns...)
	out.Rows = make([]table.Row, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}
