package records

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"aadhaar-records/core/table"

	"github.com/alitto/pond/v2"
)

// ColumnRecordID is the column holding the generated identifier.
const ColumnRecordID = "record_id"

const (
	idPrefix        = "ADHR"
	datePlaceholder = "00000000"
	hashLength      = 6
)

// GenerateRecordID builds the identifier ADHR-<YYYYMMDD>-<PINCODE>-<HASH6> for a row.
// The date is expected as DD-MM-YYYY; any other shape yields the 00000000
// placeholder while the hash still covers the raw date. Missing cells read as "".
func GenerateRecordID(row table.Row) string {
	date, _ := row.Get("date")
	state, _ := row.Get("state")
	district, _ := row.Get("district")
	pincode, _ := row.Get("pincode")

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%s-%s", date, pincode, district, state)))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))[:hashLength]

	return fmt.Sprintf("%s-%s-%s-%s", idPrefix, compactDate(date), pincode, hash)
}

// compactDate turns DD-MM-YYYY into YYYYMMDD.
func compactDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return datePlaceholder
	}
	return parts[2] + parts[1] + parts[0]
}

// AssignRecordIDs sets record_id on every row of t and moves the column last.
// Rows are split into contiguous chunks across workers; each task only touches
// its own rows, so the result does not depend on the worker count.
func AssignRecordIDs(ctx context.Context, t *table.Table, workers int) error {
	if workers < 1 {
		workers = 1
	}

	rows := t.Rows
	if workers == 1 || len(rows) < 2 {
		for _, row := range rows {
			row[ColumnRecordID] = GenerateRecordID(row)
		}
		moveLast(t, ColumnRecordID)
		return ctx.Err()
	}

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()

	chunk := (len(rows) + workers - 1) / workers
	for start := 0; start < len(rows); start += chunk {
		end := start + chunk
		if end > len(rows) {
			end = len(rows)
		}
		part := rows[start:end]
		group.Submit(func() {
			for _, row := range part {
				if groupCtx.Err() != nil {
					return
				}
				row[ColumnRecordID] = GenerateRecordID(row)
			}
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return fmt.Errorf("record id assignment: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("record id assignment: %w", err)
	}

	moveLast(t, ColumnRecordID)
	return nil
}

func moveLast(t *table.Table, col string) {
	cols := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		if c != col {
			cols = append(cols, c)
		}
	}
	t.Columns = append(cols, col)
}
