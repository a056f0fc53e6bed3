package analytics

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"aadhaar-records/core/table"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *table.Table) (*fiber.App, *Store) {
	store := NewStore(FileSource{Path: "does-not-exist.csv"}, zap.NewNop(), nil)
	store.Replace(t)

	app := fiber.New()
	NewFeature(store, zap.NewNop(), 1000).Load(app)
	return app, store
}

func get(t *testing.T, app *fiber.App, method, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHandler_Health(t *testing.T) {
	app, _ := setupApp(geoTable())
	status, body := get(t, app, "GET", "/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","records_count":4}`, body)
}

func TestHandler_Summary(t *testing.T) {
	app, _ := setupApp(geoTable())
	_, body := get(t, app, "GET", "/analytics/summary")
	assert.JSONEq(t, `{"age_0_5":19,"age_5_17":3,"age_18_plus":0,"total":22}`, body)

	empty, _ := setupApp(nil)
	status, body := get(t, empty, "GET", "/analytics/summary")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"error":"No data available"}`, body)
}

func TestHandler_Geo(t *testing.T) {
	app, _ := setupApp(&table.Table{
		Columns: []string{"state", "district", "age_0_5"},
		Rows: []table.Row{
			{"state": "UP", "district": "Gorakhpur", "age_0_5": "10"},
			{"state": "UP", "district": "Gorakhpur", "age_0_5": "5"},
		},
	})

	_, body := get(t, app, "GET", "/analytics/geo?state=UP")
	assert.JSONEq(t, `[{"state":"UP","district":"Gorakhpur","age_0_5":15}]`, body)

	empty, _ := setupApp(nil)
	_, body = get(t, empty, "GET", "/analytics/geo")
	assert.JSONEq(t, `[]`, body)
}

func TestHandler_Search(t *testing.T) {
	app, _ := setupApp(geoTable())

	tests := []struct {
		name   string
		target string
		status int
		count  int
	}{
		{"Substring match", "/records?pincode=2730", fiber.StatusOK, 2},
		{"Limit", "/records?pincode=2730&limit=1", fiber.StatusOK, 1},
		{"No match", "/records?pincode=999", fiber.StatusOK, 0},
		{"Missing pincode", "/records", fiber.StatusBadRequest, -1},
		{"Short pincode", "/records?pincode=27", fiber.StatusBadRequest, -1},
		{"Zero limit", "/records?pincode=273&limit=0", fiber.StatusBadRequest, -1},
		{"Non numeric limit", "/records?pincode=273&limit=abc", fiber.StatusBadRequest, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, "GET", tt.target)
			assert.Equal(t, tt.status, status)
			if tt.count < 0 {
				assert.Contains(t, body, "error")
				return
			}
			var records []map[string]any
			require.NoError(t, json.Unmarshal([]byte(body), &records))
			assert.Len(t, records, tt.count)
		})
	}
}

func TestHandler_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_records.csv")
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0o644))

	store := NewStore(FileSource{Path: path}, zap.NewNop(), nil)
	app := fiber.New()
	NewFeature(store, zap.NewNop(), 1000).Load(app)

	_, body := get(t, app, "GET", "/")
	assert.JSONEq(t, `{"status":"ok","records_count":0}`, body)

	status, body := get(t, app, "POST", "/admin/reload")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","records_count":3}`, body)

	_, body = get(t, app, "GET", "/")
	assert.JSONEq(t, `{"status":"ok","records_count":3}`, body)
}
