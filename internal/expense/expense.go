package expense

import (
	"errors"
	"fmt"
	"time"
)

// Field names a single editable column of a record.
type Field string

const (
	FieldAmount   Field = "amount"
	FieldDate     Field = "date"
	FieldCategory Field = "category"
	FieldNotes    Field = "notes"
)

// DisplayDateLayout is the layout the presentation surface shows dates in.
const DisplayDateLayout = "01/02/2006"

// Record is a single expense entry.
type Record struct {
	ID       int64   `json:"id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Notes    string  `json:"notes"`
}

// Draft carries an expense candidate from the input surface.
// Amount is raw text so both "12.50" and a JSON number can be submitted.
type Draft struct {
	Amount   string
	Category string
	Date     string
	Notes    string
}

var (
	ErrNotFound      = errors.New("expense not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("category is required")
	ErrUnknownField  = errors.New("unknown field")
)

// ValidationError rejects an add or an edit. Err is one of the sentinel errors above.
type ValidationError struct {
	Field Field
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field Field, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// ParseDate checks that s is a zero-padded calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(time.DateOnly) {
		return time.Time{}, ErrInvalidDate
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}

// DisplayDate turns a canonical date into the MM/DD/YYYY display form.
// Values that are not canonical dates are returned unchanged.
func DisplayDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}

	return t.Format(DisplayDateLayout)
}
