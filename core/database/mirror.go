package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// maxPlaceholders keeps batched inserts under the sqlite bound variable limit.
const maxPlaceholders = 900

// ReplaceTable drops tableName and recreates it with one TEXT column per entry
// of columns, then inserts rows. Each row must have len(columns) values; nil
// values become NULL. Statements run inside one transaction; on sqlite a
// failure rolls everything back, while MySQL commits DROP and CREATE
// implicitly, so only the inserts roll back there.
func ReplaceTable(db *gorm.DB, tableName string, columns []string, rows [][]any) error {
	if len(columns) == 0 {
		return fmt.Errorf("table %s has no columns", tableName)
	}

	quotedTable := quote(db, tableName)
	quotedCols := make([]string, len(columns))
	defs := make([]string, len(columns))
	for i, c := range columns {
		quotedCols[i] = quote(db, c)
		defs[i] = quotedCols[i] + " TEXT"
	}

	batchSize := maxPlaceholders / len(columns)
	if batchSize < 1 {
		batchSize = 1
	}
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	insertPrefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", quotedTable, strings.Join(quotedCols, ","))

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DROP TABLE IF EXISTS " + quotedTable).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tableName, err)
		}
		if err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quotedTable, strings.Join(defs, ", "))).Error; err != nil {
			return fmt.Errorf("failed to create table %s: %w", tableName, err)
		}

		for start := 0; start < len(rows); start += batchSize {
			end := start + batchSize
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[start:end]

			placeholders := make([]string, len(batch))
			args := make([]any, 0, len(batch)*len(columns))
			for i, row := range batch {
				if len(row) != len(columns) {
					return fmt.Errorf("row %d has %d values, expected %d", start+i, len(row), len(columns))
				}
				placeholders[i] = rowPlaceholder
				args = append(args, row...)
			}

			if err := tx.Exec(insertPrefix+strings.Join(placeholders, ","), args...).Error; err != nil {
				return fmt.Errorf("failed to insert rows %d-%d into %s: %w", start, end-1, tableName, err)
			}
		}
		return nil
	})
}
