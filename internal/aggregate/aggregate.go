// Package aggregate computes totals over expense records.
package aggregate

import (
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary holds the grand total and one entry per category, in the order each
// category first appears.
type Summary struct {
	Total      float64         `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
}

type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

func Summarize(records []expense.Record) Summary {
	s := Summary{ByCategory: []CategoryTotal{}}
	index := make(map[string]int)

	for _, r := range records {
		s.Total += r.Amount

		i, ok := index[r.Category]
		if !ok {
			i = len(s.ByCategory)
			index[r.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: r.Category})
		}

		s.ByCategory[i].Total += r.Amount
	}

	return s
}

// DailyTotals sums amounts per date, ascending by date.
func DailyTotals(records []expense.Record) []DailyTotal {
	totals := make(map[string]float64)

	for _, r := range records {
		totals[r.Date] += r.Amount
	}

	out := make([]DailyTotal, 0, len(totals))
	for date, total := range totals {
		out = append(out, DailyTotal{Date: date, Total: total})
	}

	slices.SortFunc(out, func(a, b DailyTotal) int {
		return strings.Compare(a.Date, b.Date)
	})

	return out
}

// BudgetState classifies spending against the monthly budget.
type BudgetState string

const (
	BudgetUnset BudgetState = "unset"
	BudgetUnder BudgetState = "under"
	BudgetOver  BudgetState = "over"
)

type Budget struct {
	Budget    float64     `json:"budget"`
	Spent     float64     `json:"spent"`
	Remaining float64     `json:"remaining"`
	State     BudgetState `json:"state"`
}

// BudgetStatus compares monthlyBudget with what was spent in yearMonth (YYYY-MM).
// It looks at every record passed in, so callers hand it the unfiltered collection.
func BudgetStatus(records []expense.Record, monthlyBudget float64, yearMonth string) Budget {
	prefix := yearMonth + "-"

	var spent float64

	for _, r := range records {
		if strings.HasPrefix(r.Date, prefix) {
			spent += r.Amount
		}
	}

	b := Budget{
		Budget:    monthlyBudget,
		Spent:     spent,
		Remaining: monthlyBudget - spent,
	}

	switch {
	case monthlyBudget <= 0:
		b.State = BudgetUnset
	case b.Remaining < 0:
		b.State = BudgetOver
	default:
		b.State = BudgetUnder
	}

	return b
}
