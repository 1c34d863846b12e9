package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

// EmptyMessage is shown to the user instead of an empty export.
const EmptyMessage = "No expenses to export."

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("no expenses to export")

// Lister provides the records to export in insertion order.
type Lister interface {
	List() []expense.Record
}

// Service writes the expense collection to export files.
type Service struct {
	expenses Lister
}

func NewService(expenses Lister) *Service {
	return &Service{expenses: expenses}
}

// Render returns the serialized collection and fails with ErrEmpty when there are no
// records.
func (s *Service) Render(format Format) (string, error) {
	records := s.expenses.List()
	if len(records) == 0 {
		return "", ErrEmpty
	}

	return format.Render(records)
}

// Export writes the collection to outputDir under the format's file name and returns
// the path written.
func (s *Service) Export(ctx context.Context, format Format, outputDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := s.Render(format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, format.FileName())

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", format.FileName(), err)
	}

	return path, nil
}

// Archive writes a zip holding both the JSON and the CSV export to w.
func (s *Service) Archive(w io.Writer) error {
	records := s.expenses.List()
	if len(records) == 0 {
		return ErrEmpty
	}

	zw := zip.NewWriter(w)

	for _, format := range []Format{FormatJSON, FormatCSV} {
		content, err := format.Render(records)
		if err != nil {
			return err
		}

		f, err := zw.Create(format.FileName())
		if err != nil {
			return fmt.Errorf("adding %s: %w", format.FileName(), err)
		}

		if _, err := io.WriteString(f, content); err != nil {
			return fmt.Errorf("writing %s: %w", format.FileName(), err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}
