package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/spendview/internal/encoding"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

var ErrNoHeader = errors.New("no header with Date, Amount and Category columns found")

// columns of the exported CSV. ID is ignored on import; Notes is optional.
const (
	colDate     = "date"
	colAmount   = "amount"
	colCategory = "category"
	colNotes    = "notes"
)

// Parse reads a CSV in the export layout. The header may sit on any row and column
// names are matched without regard to case. Blank rows are skipped. Errors carry the
// 1-based line number of the offending row.
func Parse(r io.Reader) ([]expense.Draft, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	if charset != enc.CharsetUTF8 {
		slog.Info("decoding import", "charset", charset)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var cols map[string]int

	drafts := []expense.Draft{}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if cols == nil {
			cols = headerColumns(row)
			continue
		}

		if blank(row) {
			continue
		}

		d, err := toDraft(row, cols)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		drafts = append(drafts, d)
	}

	if cols == nil {
		return nil, ErrNoHeader
	}

	return drafts, nil
}

// headerColumns maps lower-cased column names to their index, or returns nil when row
// is not the header.
func headerColumns(row []string) map[string]int {
	cols := make(map[string]int)

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, dup := cols[name]; name != "" && !dup {
			cols[name] = i
		}
	}

	for _, required := range []string{colDate, colAmount, colCategory} {
		if _, ok := cols[required]; !ok {
			return nil
		}
	}

	return cols
}

func toDraft(row []string, cols map[string]int) (expense.Draft, error) {
	date, err := expense.NormalizeDate(cell(row, cols, colDate))
	if err != nil {
		return expense.Draft{}, &expense.ValidationError{Field: expense.FieldDate, Err: err}
	}

	amount := cell(row, cols, colAmount)
	if _, err := expense.ParseAmount(amount, ""); err != nil {
		return expense.Draft{}, &expense.ValidationError{Field: expense.FieldAmount, Err: err}
	}

	category := cell(row, cols, colCategory)
	if category == "" {
		return expense.Draft{}, &expense.ValidationError{Field: expense.FieldCategory, Err: expense.ErrEmptyCategory}
	}

	return expense.Draft{
		Amount:   amount,
		Category: category,
		Date:     date,
		Notes:    cell(row, cols, colNotes),
	}, nil
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
