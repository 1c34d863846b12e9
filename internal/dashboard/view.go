package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendview/internal/aggregate"
	"github.com/MrJamesThe3rd/spendview/internal/chart"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/filter"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

// EmptyMessage replaces the table when the filter leaves no rows.
const EmptyMessage = "No expenses found for this period."

const (
	StatusOver  = "Over Budget!"
	StatusUnder = "Under Budget"
)

// Row is one table line, formatted for display.
type Row struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	DisplayDate   string  `json:"display_date"`
	Amount        float64 `json:"amount"`
	DisplayAmount string  `json:"display_amount"`
	Category      string  `json:"category"`
	Notes         string  `json:"notes"`
}

type SummaryView struct {
	TotalLabel    string   `json:"total_label"`
	CategoryLines []string `json:"category_lines"`
}

type BudgetView struct {
	BudgetLabel    string `json:"budget_label"`
	SpentLabel     string `json:"spent_label"`
	RemainingLabel string `json:"remaining_label"`
	StatusText     string `json:"status_text"`
	StatusClass    string `json:"status_class"`
}

// View is everything the presentation surface draws.
type View struct {
	Rows         []Row          `json:"rows"`
	EmptyMessage string         `json:"empty_message,omitempty"`
	Summary      SummaryView    `json:"summary"`
	Budget       BudgetView     `json:"budget"`
	Pie          chart.Pie      `json:"pie"`
	Bar          chart.Bar      `json:"bar"`
	Filter       filter.Spec    `json:"filter"`
	Bounds       filter.Bounds  `json:"bounds"`
	Sort         filter.Sort    `json:"sort"`
	Currency     string         `json:"currency"`
	Theme        settings.Theme `json:"theme"`
	Degraded     bool           `json:"degraded,omitempty"`
}

// FormatAmount renders an amount the way the table shows it, e.g. "$ 12.50".
func FormatAmount(currency string, amount float64) string {
	return currency + " " + decimal.NewFromFloat(amount).StringFixed(2)
}

func toRows(records []expense.Record, currency string) []Row {
	rows := make([]Row, 0, len(records))

	for _, r := range records {
		rows = append(rows, Row{
			ID:            r.ID,
			Date:          r.Date,
			DisplayDate:   expense.DisplayDate(r.Date),
			Amount:        r.Amount,
			DisplayAmount: FormatAmount(currency, r.Amount),
			Category:      r.Category,
			Notes:         r.Notes,
		})
	}

	return rows
}

func toSummaryView(s aggregate.Summary, currency string) SummaryView {
	lines := make([]string, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		lines = append(lines, c.Category+": "+FormatAmount(currency, c.Total))
	}

	return SummaryView{
		TotalLabel:    FormatAmount(currency, s.Total),
		CategoryLines: lines,
	}
}

func toBudgetView(b aggregate.Budget, currency string) BudgetView {
	v := BudgetView{
		BudgetLabel:    FormatAmount(currency, b.Budget),
		SpentLabel:     FormatAmount(currency, b.Spent),
		RemainingLabel: FormatAmount(currency, b.Remaining),
	}

	switch b.State {
	case aggregate.BudgetOver:
		v.StatusText, v.StatusClass = StatusOver, string(aggregate.BudgetOver)
	case aggregate.BudgetUnder:
		v.StatusText, v.StatusClass = StatusUnder, string(aggregate.BudgetUnder)
	}

	return v
}

func categoryPoints(s aggregate.Summary) []chart.Point {
	points := make([]chart.Point, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		points = append(points, chart.Point{Label: c.Category, Value: c.Total})
	}

	return points
}

func dailyPoints(totals []aggregate.DailyTotal) []chart.Point {
	points := make([]chart.Point, 0, len(totals))
	for _, d := range totals {
		points = append(points, chart.Point{Label: expense.DisplayDate(d.Date), Value: d.Total})
	}

	return points
}
