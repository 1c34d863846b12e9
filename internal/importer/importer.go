// Package importer reads expense drafts from uploaded CSV files.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

// Source names the layout of an uploaded file.
type Source string

const (
	// SourceExport is the CSV this application exports.
	SourceExport Source = "export"
	// SourceCGD is a Caixa Geral de Depósitos statement.
	SourceCGD Source = "cgd"
)

type Importer interface {
	Parse(r io.Reader) ([]expense.Draft, error)
}
