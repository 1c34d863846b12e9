package expense

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// ValidateEdit parses rawText for the given field and returns a copy of current with
// the parsed value applied. It has no side effects: on rejection the caller keeps
// current and redisplays it.
func ValidateEdit(field Field, rawText string, current Record, currency string) (Record, error) {
	next := current

	switch field {
	case FieldAmount:
		amount, err := ParseAmount(rawText, currency)
		if err != nil {
			return current, invalid(field, err)
		}

		next.Amount = amount
	case FieldDate:
		date, err := NormalizeDate(rawText)
		if err != nil {
			return current, invalid(field, err)
		}

		next.Date = date
	case FieldCategory:
		category := strings.TrimSpace(rawText)
		if category == "" {
			return current, invalid(field, ErrEmptyCategory)
		}

		next.Category = category
	case FieldNotes:
		next.Notes = rawText
	default:
		return current, invalid(field, ErrUnknownField)
	}

	return next, nil
}

// ParseAmount strips currency decoration from s and parses it as a strictly positive
// amount. Both "$ 12.50" and "1,234.5" are accepted.
func ParseAmount(s, currency string) (float64, error) {
	if currency != "" {
		s = strings.ReplaceAll(s, currency, "")
	}

	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
	})
	s = strings.ReplaceAll(s, ",", "")

	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}

	// Overflow yields +Inf and underflow yields 0.
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) || f <= 0 {
		return 0, ErrInvalidAmount
	}

	return f, nil
}

// NormalizeDate accepts the display form MM/DD/YYYY, or a canonical date typed
// directly, and returns the canonical form.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(DisplayDateLayout, s); err == nil && len(s) == len(DisplayDateLayout) {
		return t.Format(time.DateOnly), nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return "", ErrInvalidDate
	}

	return t.Format(time.DateOnly), nil
}

// validateDraft turns a Draft into a Record without an id.
func validateDraft(d Draft) (Record, error) {
	amount, err := ParseAmount(d.Amount, "")
	if err != nil {
		return Record{}, invalid(FieldAmount, err)
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		return Record{}, invalid(FieldCategory, ErrEmptyCategory)
	}

	date := strings.TrimSpace(d.Date)
	if _, err := ParseDate(date); err != nil {
		return Record{}, invalid(FieldDate, err)
	}

	return Record{
		Amount:   amount,
		Category: category,
		Date:     date,
		Notes:    strings.TrimSpace(d.Notes),
	}, nil
}
