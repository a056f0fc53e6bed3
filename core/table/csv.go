package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when a tabular file has no header row.
var ErrNoHeader = errors.New("no header row")

const utf8BOM = "\ufeff"

// ReadCSV parses delimited text with a header row into a Table.
// Header names are normalized; empty cells are treated as missing.
// Short rows are padded with missing cells, long rows are rejected.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := New(normalizeHeader(header)...)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", line, err)
		}
		row, err := buildRow(t.Columns, record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// WriteCSV serializes the table with a header row and no index column.
// Missing cells are written as empty fields.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(t.Record(row)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// buildRow maps a raw record onto the header. Empty cells are left out.
func buildRow(columns []string, record []string) (Row, error) {
	if len(record) > len(columns) {
		return nil, fmt.Errorf("expected %d fields, saw %d", len(columns), len(record))
	}
	row := make(Row, len(record))
	for i, v := range record {
		if v == "" {
			continue
		}
		row[columns[i]] = v
	}
	return row, nil
}

// normalizeHeader trims and lowercases names, naming blank headers after their
// position and mangling duplicates as name.1, name.2, ...
func normalizeHeader(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, name := range raw {
		n := NormalizeColumn(name)
		if n == "" {
			n = "unnamed: " + strconv.Itoa(i)
		}
		base := n
		for k := 1; used[n]; k++ {
			n = base + "." + strconv.Itoa(k)
		}
		used[n] = true
		out[i] = n
	}
	return out
}
