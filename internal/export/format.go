package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

// Format selects the export file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

const (
	FileNameJSON = "expenses.json"
	FileNameCSV  = "expenses.csv"

	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv;charset=utf-8;"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"ID", "Date", "Amount", "Category", "Notes"}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) FileName() string {
	if f == FormatCSV {
		return FileNameCSV
	}

	return FileNameJSON
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return ContentTypeCSV
	}

	return ContentTypeJSON
}

// Render serializes records in the format f.
func (f Format) Render(records []expense.Record) (string, error) {
	if f == FormatCSV {
		return ToCSV(records), nil
	}

	return ToJSON(records)
}

// ToJSON pretty prints records with two-space indentation. Amounts stay numeric.
func ToJSON(records []expense.Record) (string, error) {
	if records == nil {
		records = []expense.Record{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encoding expenses: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ToCSV writes one row per record below CSVHeader. Notes are always quoted; other
// fields are quoted only when they would otherwise break the row.
func ToCSV(records []expense.Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))

	for _, r := range records {
		lines = append(lines, strings.Join([]string{
			strconv.FormatInt(r.ID, 10),
			r.Date,
			decimal.NewFromFloat(r.Amount).StringFixed(2),
			quoteIfNeeded(r.Category),
			quote(r.Notes),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}

	return s
}
