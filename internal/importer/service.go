package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/importer/cgd"
)

type Service struct {
	exportImporter Importer
	cgdImporter    Importer
}

func NewService() *Service {
	return &Service{
		exportImporter: ImporterFunc(Parse),
		cgdImporter:    cgd.NewParser(),
	}
}

// Import parses r with the importer for source. An empty source means SourceExport.
func (s *Service) Import(source Source, r io.Reader) ([]expense.Draft, error) {
	var importer Importer

	switch source {
	case SourceExport, "":
		importer = s.exportImporter
	case SourceCGD:
		importer = s.cgdImporter
	default:
		return nil, fmt.Errorf("unknown import source: %s", source)
	}

	return importer.Parse(r)
}

// ImporterFunc adapts a plain function to the Importer interface.
type ImporterFunc func(r io.Reader) ([]expense.Draft, error)

func (f ImporterFunc) Parse(r io.Reader) ([]expense.Draft, error) {
	return f(r)
}
