package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
	expensestore "github.com/MrJamesThe3rd/spendview/internal/expense/store"
	"github.com/MrJamesThe3rd/spendview/internal/filter"
	"github.com/MrJamesThe3rd/spendview/internal/kv"
	"github.com/MrJamesThe3rd/spendview/internal/kv/memory"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

var today = time.Date(2024, 3, 6, 15, 4, 0, 0, time.UTC)

func newDashboard(t *testing.T, stored map[string]string) (*dashboard.Dashboard, *memory.Store) {
	t.Helper()

	backing := memory.NewFrom(stored)

	var next int64 = 1000

	expenses := expense.NewService(expensestore.New(backing), expense.WithIDSource(func() int64 {
		next++
		return next
	}))

	d := dashboard.New(expenses, settings.NewService(backing), dashboard.WithClock(func() time.Time {
		return today
	}))
	require.NoError(t, d.Load(context.Background()))

	return d, backing
}

func TestDashboard_Scenario(t *testing.T) {
	ctx := context.Background()
	d, backing := newDashboard(t, nil)

	_, err := d.AddExpense(ctx, expense.Draft{Amount: "12.50", Category: "Food", Date: "2024-03-05", Notes: "lunch"})
	require.NoError(t, err)

	_, err = d.AddExpense(ctx, expense.Draft{Amount: "7", Category: "Food", Date: "2024-03-06"})
	require.NoError(t, err)

	v := d.Snapshot()

	require.Len(t, v.Rows, 2)
	assert.Empty(t, v.EmptyMessage)
	assert.Equal(t, "03/05/2024", v.Rows[0].DisplayDate)
	assert.Equal(t, "$ 12.50", v.Rows[0].DisplayAmount)
	assert.Equal(t, "$ 19.50", v.Summary.TotalLabel)
	assert.Equal(t, []string{"Food: $ 19.50"}, v.Summary.CategoryLines)

	assert.Equal(t, "$ 0.00", v.Budget.BudgetLabel)
	assert.Equal(t, "$ 19.50", v.Budget.SpentLabel)
	assert.Empty(t, v.Budget.StatusText)
	assert.Empty(t, v.Budget.StatusClass)

	require.False(t, v.Pie.Empty)
	require.Len(t, v.Pie.Slices, 1)
	assert.Equal(t, "100.0", v.Pie.Legend[0].Percentage)

	require.False(t, v.Bar.Empty)
	require.Len(t, v.Bar.Bars, 2)
	assert.Equal(t, "03/05/2024", v.Bar.Bars[0].Label)
	assert.Equal(t, 1.0, v.Bar.Bars[0].HeightFraction)

	raw, found, err := backing.Get(ctx, kv.KeyExpenses)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"category":"Food"`)
}

func TestDashboard_EditRejectedKeepsRecord(t *testing.T) {
	ctx := context.Background()
	d, _ := newDashboard(t, nil)

	rec, err := d.AddExpense(ctx, expense.Draft{Amount: "10", Category: "Food", Date: "2024-03-05"})
	require.NoError(t, err)

	got, err := d.EditExpense(ctx, rec.ID, expense.FieldAmount, "$ -5")
	assert.ErrorIs(t, err, expense.ErrInvalidAmount)
	assert.Equal(t, rec, got)
	assert.Equal(t, "$ 10.00", d.Snapshot().Rows[0].DisplayAmount)

	got, err = d.EditExpense(ctx, rec.ID, expense.FieldAmount, "$ 11.25")
	require.NoError(t, err)
	assert.Equal(t, 11.25, got.Amount)

	_, err = d.EditExpense(ctx, 42, expense.FieldNotes, "x")
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestDashboard_EditUsesCurrentCurrency(t *testing.T) {
	ctx := context.Background()
	d, _ := newDashboard(t, map[string]string{kv.KeyCurrency: "€"})

	rec, err := d.AddExpense(ctx, expense.Draft{Amount: "10", Category: "Food", Date: "2024-03-05"})
	require.NoError(t, err)

	got, err := d.EditExpense(ctx, rec.ID, expense.FieldAmount, "€ 1,200.00")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.Amount)
	assert.Equal(t, "€ 1200.00", d.Snapshot().Rows[0].DisplayAmount)
}

func TestDashboard_FilterNarrowsViewButNotBudget(t *testing.T) {
	ctx := context.Background()
	d, _ := newDashboard(t, map[string]string{kv.KeyMonthlyBudget: "100"})

	for _, draft := range []expense.Draft{
		{Amount: "60", Category: "Rent", Date: "2024-03-01"},
		{Amount: "50", Category: "Food", Date: "2024-03-04"},
		{Amount: "5", Category: "Food", Date: "2024-02-27"},
	} {
		_, err := d.AddExpense(ctx, draft)
		require.NoError(t, err)
	}

	require.NoError(t, d.SetFilter(filter.Spec{Range: filter.RangeWeek}))

	v := d.Snapshot()

	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Food", v.Rows[0].Category)
	assert.Equal(t, "$ 50.00", v.Summary.TotalLabel)
	assert.Equal(t, "2024-03-03", *v.Bounds.Start)
	assert.Equal(t, "2024-03-09", *v.Bounds.End)

	assert.Equal(t, "$ 110.00", v.Budget.SpentLabel)
	assert.Equal(t, "$ -10.00", v.Budget.RemainingLabel)
	assert.Equal(t, dashboard.StatusOver, v.Budget.StatusText)
	assert.Equal(t, "over", v.Budget.StatusClass)

	require.NoError(t, d.SetFilter(filter.Spec{Range: filter.RangeToday}))

	v = d.Snapshot()
	assert.Empty(t, v.Rows)
	assert.Equal(t, dashboard.EmptyMessage, v.EmptyMessage)
	assert.True(t, v.Pie.Empty)
	assert.True(t, v.Bar.Empty)
}

func TestDashboard_SetFilter(t *testing.T) {
	d, _ := newDashboard(t, nil)

	type testCase struct {
		name    string
		spec    filter.Spec
		wantErr bool
	}

	tests := []testCase{
		{name: "Month", spec: filter.Spec{Range: filter.RangeMonth}},
		{name: "CustomOpen", spec: filter.Spec{Range: filter.RangeCustom, End: new("2024-03-01")}},
		{name: "CustomBadDate", spec: filter.Spec{Range: filter.RangeCustom, Start: new("03/01/2024")}, wantErr: true},
		{name: "UnknownRange", spec: filter.Spec{Range: "year"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := d.Filter()

			err := d.SetFilter(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, dashboard.ErrInvalidFilter)
				assert.Equal(t, before, d.Filter())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.spec.Range, d.Filter().Range)
		})
	}
}

func TestDashboard_SortAndSettings(t *testing.T) {
	ctx := context.Background()
	d, backing := newDashboard(t, nil)

	for _, amount := range []string{"3", "9", "1"} {
		_, err := d.AddExpense(ctx, expense.Draft{Amount: amount, Category: "Food", Date: "2024-03-05"})
		require.NoError(t, err)
	}

	require.NoError(t, d.SetSort(filter.Sort{Field: filter.SortAmount, Desc: true}))

	_, err := d.SetCurrency(ctx, "£")
	require.NoError(t, err)

	_, err = d.SetBudget(ctx, "20")
	require.NoError(t, err)

	assert.Equal(t, settings.ThemeDark, d.ToggleTheme(ctx).Theme)

	v := d.Snapshot()

	assert.Equal(t, []string{"£ 9.00", "£ 3.00", "£ 1.00"}, []string{
		v.Rows[0].DisplayAmount, v.Rows[1].DisplayAmount, v.Rows[2].DisplayAmount,
	})
	assert.Equal(t, dashboard.StatusUnder, v.Budget.StatusText)
	assert.Equal(t, settings.ThemeDark, v.Theme)

	stored, _, _ := backing.Get(ctx, kv.KeyMonthlyBudget)
	assert.Equal(t, "20", stored)

	assert.Error(t, d.SetSort(filter.Sort{Field: "notes"}))
}

func TestDashboard_Delete(t *testing.T) {
	ctx := context.Background()
	d, _ := newDashboard(t, nil)

	rec, err := d.AddExpense(ctx, expense.Draft{Amount: "3", Category: "Food", Date: "2024-03-05"})
	require.NoError(t, err)

	assert.True(t, d.DeleteExpense(ctx, rec.ID))
	assert.False(t, d.DeleteExpense(ctx, rec.ID))
	assert.Empty(t, d.Records())
}

func TestDashboard_CorruptStorageStartsDegraded(t *testing.T) {
	ctx := context.Background()
	d, backing := newDashboard(t, map[string]string{kv.KeyExpenses: "not json"})

	v := d.Snapshot()
	assert.True(t, v.Degraded)
	assert.Empty(t, v.Rows)

	_, err := d.AddExpense(ctx, expense.Draft{Amount: "4", Category: "Food", Date: "2024-03-05"})
	require.NoError(t, err)
	assert.Len(t, d.Snapshot().Rows, 1)

	stored, _, _ := backing.Get(ctx, kv.KeyExpenses)
	assert.Equal(t, "not json", stored)
}

func TestDashboard_OverflowingInputKeepsSnapshotUsable(t *testing.T) {
	ctx := context.Background()
	d, _ := newDashboard(t, nil)

	_, err := d.AddExpense(ctx, expense.Draft{Amount: "1e400", Category: "Food", Date: "2024-03-05"})
	require.ErrorIs(t, err, expense.ErrInvalidAmount)

	_, err = d.SetBudget(ctx, "1e400")
	require.ErrorIs(t, err, settings.ErrInvalidBudget)

	assert.NotPanics(t, func() {
		v := d.Snapshot()
		assert.False(t, v.Degraded)
		assert.Empty(t, v.Rows)
	})
}
