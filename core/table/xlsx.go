package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of a workbook. The first row is the header.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	t := New(normalizeHeader(rows[0])...)
	for i, record := range rows[1:] {
		if len(record) == 0 {
			continue
		}
		row, err := buildRow(t.Columns, record)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheets[0], i+2, err)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
