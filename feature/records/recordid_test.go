package records

import (
	"context"
	"fmt"
	"testing"

	"aadhaar-records/core/reconcile"
	"aadhaar-records/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecordID(t *testing.T) {
	tests := []struct {
		name string
		row  table.Row
		want string
	}{
		{
			name: "Well formed date",
			row:  table.Row{"date": "15-03-2024", "state": "UP", "district": "Gorakhpur", "pincode": "273001"},
			want: "ADHR-20240315-273001-D8B812",
		},
		{
			name: "Unsplittable date keeps raw value in hash",
			row:  table.Row{"date": "2024/03/15", "state": "UP", "district": "Gorakhpur", "pincode": "273001"},
			want: "ADHR-00000000-273001-4BF48F",
		},
		{
			name: "Missing cells",
			row:  table.Row{"pincode": "273001"},
			want: "ADHR-00000000-273001-F755A8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateRecordID(tt.row))
		})
	}
}

func TestGenerateRecordID_Deterministic(t *testing.T) {
	a := table.Row{"date": "01-01-2025", "state": "Bihar", "district": "Patna", "pincode": "800001", "count": "4"}
	b := table.Row{"date": "01-01-2025", "state": "Bihar", "district": "Patna", "pincode": "800001", "count": "9"}
	c := table.Row{"date": "01-01-2025", "state": "Bihar", "district": "Gaya", "pincode": "800001"}

	assert.Equal(t, GenerateRecordID(a), GenerateRecordID(b))
	assert.NotEqual(t, GenerateRecordID(a), GenerateRecordID(c))
}

func TestCompactDate(t *testing.T) {
	assert.Equal(t, "20240315", compactDate("15-03-2024"))
	assert.Equal(t, datePlaceholder, compactDate("15-03"))
	assert.Equal(t, datePlaceholder, compactDate("15-03-2024-01"))
	assert.Equal(t, datePlaceholder, compactDate(""))
}

func buildTable(n int) *table.Table {
	t := table.New("date", "state", "district", "pincode")
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, table.Row{
			"date":     fmt.Sprintf("%02d-03-2024", i%28+1),
			"state":    "UP",
			"district": fmt.Sprintf("D%d", i%7),
			"pincode":  fmt.Sprintf("27%04d", i),
		})
	}
	return t
}

func TestAssignRecordIDs_WorkerCountInvariant(t *testing.T) {
	sequential := buildTable(101)
	require.NoError(t, AssignRecordIDs(context.Background(), sequential, 1))

	for _, workers := range []int{0, 2, 8, 200} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			parallel := buildTable(101)
			require.NoError(t, AssignRecordIDs(context.Background(), parallel, workers))

			assert.Equal(t, sequential.Columns, parallel.Columns)
			for i := range sequential.Rows {
				assert.Equal(t, sequential.Rows[i][ColumnRecordID], parallel.Rows[i][ColumnRecordID])
			}
		})
	}
}

func TestAssignRecordIDs_ColumnLast(t *testing.T) {
	tbl := table.New("record_id", "date", "pincode")
	tbl.Rows = append(tbl.Rows, table.Row{"record_id": "stale", "date": "15-03-2024", "pincode": "273001"})

	require.NoError(t, AssignRecordIDs(context.Background(), tbl, 1))
	assert.Equal(t, []string{"date", "pincode", "record_id"}, tbl.Columns)
	assert.NotEqual(t, "stale", tbl.Rows[0][ColumnRecordID])
}

func TestAssignRecordIDs_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := AssignRecordIDs(ctx, buildTable(10), 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRecordID_AfterReconcileUsesTrimmedKeys(t *testing.T) {
	enrol := table.New("date", "state", "district", "pincode")
	enrol.Rows = []table.Row{{"date": "15-03-2024", "state": "UP ", "district": " Gorakhpur", "pincode": "273001"}}

	out, _, err := reconcile.ReconcileAll(&reconcile.Spec{
		Keys:    MergeKeys,
		Sources: []reconcile.Source{{Name: SourceEnrolment, Table: enrol}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ADHR-20240315-273001-D8B812", GenerateRecordID(out.Rows[0]))
}
