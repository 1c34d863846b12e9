package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/export"
)

type staticLister []expense.Record

func (l staticLister) List() []expense.Record {
	return l
}

var records = []expense.Record{
	{ID: 1709600000000, Amount: 12.5, Category: "Food", Date: "2024-03-05", Notes: `He said "hi"`},
	{ID: 1709600000001, Amount: 7, Category: "Food, drinks", Date: "2024-03-06", Notes: ""},
}

func TestToCSV(t *testing.T) {
	got := export.ToCSV(records)

	want := strings.Join([]string{
		"ID,Date,Amount,Category,Notes",
		`1709600000000,2024-03-05,12.50,Food,"He said ""hi"""`,
		`1709600000001,2024-03-06,7.00,"Food, drinks",""`,
	}, "\n")

	assert.Equal(t, want, got)
}

func TestToCSV_RoundTrip(t *testing.T) {
	rows, err := csv.NewReader(strings.NewReader(export.ToCSV(records))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, export.CSVHeader, rows[0])
	assert.Equal(t, `He said "hi"`, rows[1][4])
	assert.Equal(t, "Food, drinks", rows[2][3])
	assert.Equal(t, "7.00", rows[2][2])
}

func TestToCSV_HeaderOnly(t *testing.T) {
	assert.Equal(t, "ID,Date,Amount,Category,Notes", export.ToCSV(nil))
}

func TestToJSON(t *testing.T) {
	got, err := export.ToJSON(records[:1])
	require.NoError(t, err)

	want := `[
  {
    "id": 1709600000000,
    "amount": 12.5,
    "category": "Food",
    "date": "2024-03-05",
    "notes": "He said \"hi\""
  }
]`
	assert.Equal(t, want, got)

	var decoded []expense.Record
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, records[:1], decoded)
}

func TestToJSON_Empty(t *testing.T) {
	got, err := export.ToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestService_Export(t *testing.T) {
	type testCase struct {
		name     string
		records  []expense.Record
		format   export.Format
		wantFile string
		wantErr  error
	}

	tests := []testCase{
		{name: "JSON", records: records, format: export.FormatJSON, wantFile: "expenses.json"},
		{name: "CSV", records: records, format: export.FormatCSV, wantFile: "expenses.csv"},
		{name: "Empty", format: export.FormatCSV, wantErr: export.ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			svc := export.NewService(staticLister(tt.records))

			path, err := svc.Export(context.Background(), tt.format, dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NoDirExists(t, dir)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.wantFile), path)

			content, err := os.ReadFile(path)
			require.NoError(t, err)

			want, err := tt.format.Render(tt.records)
			require.NoError(t, err)
			assert.Equal(t, want, string(content))
		})
	}
}

func TestService_Archive(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.NewService(staticLister(records)).Archive(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.Equal(t, []string{"expenses.json", "expenses.csv"}, names)

	f, err := zr.File[1].Open()
	require.NoError(t, err)

	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, export.ToCSV(records), string(content))

	assert.ErrorIs(t, export.NewService(staticLister(nil)).Archive(io.Discard), export.ErrEmpty)
}

func TestFormat(t *testing.T) {
	f, err := export.ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, f)
	assert.Equal(t, "text/csv;charset=utf-8;", f.ContentType())
	assert.Equal(t, "application/json", export.FormatJSON.ContentType())

	_, err = export.ParseFormat("xml")
	assert.Error(t, err)
}
