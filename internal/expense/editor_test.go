package expense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

func TestValidateEdit(t *testing.T) {
	current := expense.Record{ID: 7, Amount: 12.5, Category: "Food", Date: "2024-03-05", Notes: "lunch"}

	type testCase struct {
		name    string
		field   expense.Field
		raw     string
		want    expense.Record
		wantErr error
	}

	tests := []testCase{
		{
			name:  "AmountWithCurrency",
			field: expense.FieldAmount,
			raw:   "$ 20.00",
			want:  expense.Record{ID: 7, Amount: 20, Category: "Food", Date: "2024-03-05", Notes: "lunch"},
		},
		{
			name:  "AmountWithThousands",
			field: expense.FieldAmount,
			raw:   "1,234.50",
			want:  expense.Record{ID: 7, Amount: 1234.5, Category: "Food", Date: "2024-03-05", Notes: "lunch"},
		},
		{name: "NegativeAmount", field: expense.FieldAmount, raw: "$ -5", wantErr: expense.ErrInvalidAmount},
		{name: "ZeroAmount", field: expense.FieldAmount, raw: "0", wantErr: expense.ErrInvalidAmount},
		{name: "GarbageAmount", field: expense.FieldAmount, raw: "twelve", wantErr: expense.ErrInvalidAmount},
		{name: "OverflowingAmount", field: expense.FieldAmount, raw: "1e400", wantErr: expense.ErrInvalidAmount},
		{name: "UnderflowingAmount", field: expense.FieldAmount, raw: "1e-400", wantErr: expense.ErrInvalidAmount},
		{
			name:  "DisplayDate",
			field: expense.FieldDate,
			raw:   "12/31/2024",
			want:  expense.Record{ID: 7, Amount: 12.5, Category: "Food", Date: "2024-12-31", Notes: "lunch"},
		},
		{
			name:  "CanonicalDate",
			field: expense.FieldDate,
			raw:   "2024-02-29",
			want:  expense.Record{ID: 7, Amount: 12.5, Category: "Food", Date: "2024-02-29", Notes: "lunch"},
		},
		{name: "UnpaddedDate", field: expense.FieldDate, raw: "3/5/2024", wantErr: expense.ErrInvalidDate},
		{name: "ImpossibleDate", field: expense.FieldDate, raw: "02/30/2024", wantErr: expense.ErrInvalidDate},
		{
			name:  "FreeTextCategory",
			field: expense.FieldCategory,
			raw:   " Pet supplies ",
			want:  expense.Record{ID: 7, Amount: 12.5, Category: "Pet supplies", Date: "2024-03-05", Notes: "lunch"},
		},
		{name: "EmptyCategory", field: expense.FieldCategory, raw: " ", wantErr: expense.ErrEmptyCategory},
		{
			name:  "EmptyNotes",
			field: expense.FieldNotes,
			raw:   "",
			want:  expense.Record{ID: 7, Amount: 12.5, Category: "Food", Date: "2024-03-05"},
		},
		{name: "UnknownField", field: expense.Field("id"), raw: "8", wantErr: expense.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expense.ValidateEdit(tt.field, tt.raw, current, "$")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, current, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "03/05/2024", expense.DisplayDate("2024-03-05"))
	assert.Equal(t, "not a date", expense.DisplayDate("not a date"))
}
