// Package filter narrows and orders expense records for display.
package filter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

// Range selects how the display bounds are derived.
type Range string

const (
	RangeAll    Range = "all"
	RangeToday  Range = "today"
	RangeWeek   Range = "week"
	RangeMonth  Range = "month"
	RangeCustom Range = "custom"
)

// Ranges lists every range in the order input surfaces offer them.
var Ranges = []Range{RangeAll, RangeToday, RangeWeek, RangeMonth, RangeCustom}

var ErrUnknownRange = errors.New("unknown range")

// Spec is the user-selected filter. Start and End are only read for RangeCustom.
type Spec struct {
	Range Range   `json:"range"`
	Start *string `json:"start_date,omitempty"`
	End   *string `json:"end_date,omitempty"`
}

// Bounds is an inclusive date interval in canonical form. A nil end is unbounded.
type Bounds struct {
	Start *string `json:"start_date"`
	End   *string `json:"end_date"`
}

func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Ranges, r) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
	}

	return r, nil
}

// Resolve derives the bounds for spec relative to today. Weeks run Sunday to Saturday.
func Resolve(spec Spec, today time.Time) Bounds {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	switch spec.Range {
	case RangeToday:
		return between(day, day)
	case RangeWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return between(start, start.AddDate(0, 0, 6))
	case RangeMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return between(start, start.AddDate(0, 1, -1))
	case RangeCustom:
		return Bounds{Start: nonEmpty(spec.Start), End: nonEmpty(spec.End)}
	default:
		return Bounds{}
	}
}

// Matches reports whether date falls inside b. Canonical dates compare correctly as
// strings.
func Matches(date string, b Bounds) bool {
	if b.Start != nil && date < *b.Start {
		return false
	}

	if b.End != nil && date > *b.End {
		return false
	}

	return true
}

// Apply returns the records inside b, in their original order.
func Apply(records []expense.Record, b Bounds) []expense.Record {
	out := make([]expense.Record, 0, len(records))

	for _, r := range records {
		if Matches(r.Date, b) {
			out = append(out, r)
		}
	}

	return out
}

func between(start, end time.Time) Bounds {
	return Bounds{
		Start: new(start.Format(time.DateOnly)),
		End:   new(end.Format(time.DateOnly)),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}

	return new(strings.TrimSpace(*s))
}

// SortField names the column a table is ordered by.
type SortField string

const (
	SortNone     SortField = "none"
	SortDate     SortField = "date"
	SortAmount   SortField = "amount"
	SortCategory SortField = "category"
)

var ErrUnknownSortField = errors.New("unknown sort field")

// Sort orders the table. SortNone keeps insertion order.
type Sort struct {
	Field SortField `json:"field"`
	Desc  bool      `json:"desc"`
}

func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return SortNone, nil
	}

	switch f {
	case SortNone, SortDate, SortAmount, SortCategory:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSortField, s)
}

// SortRecords returns a stably sorted copy of records.
func SortRecords(records []expense.Record, s Sort) []expense.Record {
	out := slices.Clone(records)

	var compare func(a, b expense.Record) int

	switch s.Field {
	case SortDate:
		compare = func(a, b expense.Record) int { return cmp.Compare(a.Date, b.Date) }
	case SortAmount:
		compare = func(a, b expense.Record) int { return cmp.Compare(a.Amount, b.Amount) }
	case SortCategory:
		compare = func(a, b expense.Record) int {
			return cmp.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
		}
	default:
		return out
	}

	if s.Desc {
		asc := compare
		compare = func(a, b expense.Record) int { return -asc(a, b) }
	}

	slices.SortStableFunc(out, compare)

	return out
}
