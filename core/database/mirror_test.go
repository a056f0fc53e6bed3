package database

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestReplaceTable_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	cols := []string{"date", "pincode", "age_0_5"}
	rows := make([][]any, 0, 500)
	for i := 0; i < 500; i++ {
		rows = append(rows, []any{"15-03-2024", "273001", nil})
	}

	require.NoError(t, ReplaceTable(db, "processed_records", cols, rows))

	// A second run fully replaces the first.
	require.NoError(t, ReplaceTable(db, "processed_records", cols, rows[:2]))

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM processed_records").Scan(&count).Error)
	assert.Equal(t, int64(2), count)

	var nulls int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM processed_records WHERE age_0_5 IS NULL").Scan(&nulls).Error)
	assert.Equal(t, int64(2), nulls)

	columns, err := GetTableColumns(db, "processed_records")
	require.NoError(t, err)
	assert.Len(t, columns, 3)
}

func TestReplaceTable_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS `processed_records`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `processed_records` (`date` TEXT, `pincode` TEXT)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `processed_records` (`date`,`pincode`) VALUES (?,?),(?,?)")).
		WithArgs("15-03-2024", "273001", "16-03-2024", "110001").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := ReplaceTable(db, "processed_records", []string{"date", "pincode"}, [][]any{
		{"15-03-2024", "273001"},
		{"16-03-2024", "110001"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTable_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS `processed_records`")).
		WillReturnError(errors.New("access denied"))
	mock.ExpectRollback()

	err := ReplaceTable(db, "processed_records", []string{"date"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTable_Validation(t *testing.T) {
	db, _ := setupMockDB(t)
	err := ReplaceTable(db, "processed_records", nil, nil)
	assert.EqualError(t, err, "table processed_records has no columns")
}
