package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/kv"
)

// Store persists the whole expense collection as one JSON array under kv.KeyExpenses.
type Store struct {
	kv kv.Store
}

func New(s kv.Store) *Store {
	return &Store{kv: s}
}

// storedRecord mirrors expense.Record but accepts the amount as a JSON number or as a
// numeric string.
type storedRecord struct {
	ID       int64           `json:"id"`
	Amount   json.RawMessage `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes"`
}

// Load decodes the stored collection. Records whose amount is not a positive number or
// whose date is not canonical are skipped with a warning.
func (s *Store) Load(ctx context.Context) ([]expense.Record, error) {
	raw, found, err := s.kv.Get(ctx, kv.KeyExpenses)
	if err != nil {
		return nil, fmt.Errorf("reading expenses: %w", err)
	}

	if !found || strings.TrimSpace(raw) == "" {
		return []expense.Record{}, nil
	}

	var stored []storedRecord
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}

	records := make([]expense.Record, 0, len(stored))

	for _, sr := range stored {
		amount, err := coerceAmount(sr.Amount)
		if err == nil && amount <= 0 {
			err = expense.ErrInvalidAmount
		}

		if err == nil {
			_, err = expense.ParseDate(sr.Date)
		}

		if err != nil {
			slog.Warn("skipping stored expense", "id", sr.ID, "error", err)
			continue
		}

		records = append(records, expense.Record{
			ID:       sr.ID,
			Amount:   amount,
			Category: sr.Category,
			Date:     sr.Date,
			Notes:    sr.Notes,
		})
	}

	return records, nil
}

func (s *Store) Save(ctx context.Context, records []expense.Record) error {
	if records == nil {
		records = []expense.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	if err := s.kv.Set(ctx, kv.KeyExpenses, string(data)); err != nil {
		return fmt.Errorf("writing expenses: %w", err)
	}

	return nil
}

func coerceAmount(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, fmt.Errorf("amount %s is neither a number nor a string", raw)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", str, err)
	}

	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, fmt.Errorf("amount %q is not finite", str)
	}

	return n, nil
}
