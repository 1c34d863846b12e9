// Package cgd turns Caixa Geral de Depósitos CSV statements into expense drafts.
package cgd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/spendview/internal/encoding"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

const dateLayout = "02-01-2006"

// DefaultCategory is given to every imported movement. Statements carry no category.
const DefaultCategory = "Other"

// Parser reads CGD exports (conta, extrato, cartão), detecting the layout from the
// column headers. Only money going out becomes a draft; credits are skipped.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]expense.Draft, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching CGD format found: expected columns for conta, extrato, or cartão")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows. first is the 0-based index of rows[0] in the file.
func parseRows(p *Profile, cols colIndex, rows [][]string, first int) ([]expense.Draft, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]
	amountIdx := cols[p.AmountCol]

	drafts := []expense.Draft{}

	for i, row := range rows {
		rowNum := first + i + 1

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := spent(p, cellValue(row, amountIdx))
		if !ok {
			continue
		}

		drafts = append(drafts, expense.Draft{
			Amount:   amount,
			Category: DefaultCategory,
			Date:     date,
			Notes:    desc,
		})
	}

	return drafts, nil
}

// parseDate reports false for footer rows and other cells that hold no date.
func parseDate(row []string, idx int) (string, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return "", false
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", false
	}

	return t.Format(time.DateOnly), true
}

// spent returns the outgoing amount as plain decimal text.
func spent(p *Profile, cell string) (string, bool) {
	if cell == "" {
		return "", false
	}

	d, err := parseEuropeanAmount(cell)
	if err != nil || d.IsZero() {
		return "", false
	}

	switch p.AmountMode {
	case amountSigned:
		if !d.IsNegative() {
			return "", false
		}

		return d.Neg().String(), true
	case amountDebit:
		return d.Abs().String(), true
	}

	return "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
