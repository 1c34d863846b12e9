// Package dashboard holds the state behind the expense screen and turns it into
// display-ready view models.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/spendview/internal/aggregate"
	"github.com/MrJamesThe3rd/spendview/internal/chart"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/filter"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Canvases are the chart drawing areas.
type Canvases struct {
	Pie chart.Canvas
	Bar chart.Canvas
}

// DefaultCanvases match a pie at 4:5 and a bar chart at 2:1 on a 400px wide card.
var DefaultCanvases = Canvases{
	Pie: chart.Canvas{Width: 400, Height: 320},
	Bar: chart.Canvas{Width: 400, Height: 200},
}

type Dashboard struct {
	expenses *expense.Service
	settings *settings.Service
	now      func() time.Time
	canvases Canvases

	mu     sync.Mutex
	filter filter.Spec
	sort   filter.Sort
}

type Option func(*Dashboard)

// WithClock sets where "today" comes from.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

func WithCanvases(c Canvases) Option {
	return func(d *Dashboard) {
		d.canvases = c
	}
}

func New(expenses *expense.Service, settings *settings.Service, opts ...Option) *Dashboard {
	d := &Dashboard{
		expenses: expenses,
		settings: settings,
		now:      time.Now,
		canvases: DefaultCanvases,
		filter:   filter.Spec{Range: filter.RangeAll},
		sort:     filter.Sort{Field: filter.SortNone},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Load reads settings and expenses from storage.
func (d *Dashboard) Load(ctx context.Context) error {
	if err := d.settings.Load(ctx); err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if err := d.expenses.Load(ctx); err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}

	return nil
}

func (d *Dashboard) AddExpense(ctx context.Context, draft expense.Draft) (expense.Record, error) {
	return d.expenses.Add(ctx, draft)
}

// EditExpense applies rawText to one field. On rejection the returned record is the
// last committed one, ready to be redisplayed.
func (d *Dashboard) EditExpense(ctx context.Context, id int64, field expense.Field, rawText string) (expense.Record, error) {
	return d.expenses.Update(ctx, id, field, rawText, d.settings.Get().Currency)
}

func (d *Dashboard) DeleteExpense(ctx context.Context, id int64) bool {
	return d.expenses.Remove(ctx, id)
}

func (d *Dashboard) ImportExpenses(ctx context.Context, drafts []expense.Draft) ([]expense.Record, error) {
	return d.expenses.Import(ctx, drafts)
}

// SetFilter validates spec and makes it current. Custom bounds must be canonical dates
// when present.
func (d *Dashboard) SetFilter(spec filter.Spec) error {
	r, err := filter.ParseRange(string(spec.Range))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	spec.Range = r

	if r == filter.RangeCustom {
		for _, bound := range []*string{spec.Start, spec.End} {
			if bound == nil || *bound == "" {
				continue
			}

			if _, err := expense.ParseDate(*bound); err != nil {
				return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidFilter, *bound)
			}
		}
	} else {
		spec.Start, spec.End = nil, nil
	}

	d.mu.Lock()
	d.filter = spec
	d.mu.Unlock()

	return nil
}

func (d *Dashboard) Filter() filter.Spec {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.filter
}

func (d *Dashboard) SetSort(s filter.Sort) error {
	field, err := filter.ParseSortField(string(s.Field))
	if err != nil {
		return err
	}

	s.Field = field

	d.mu.Lock()
	d.sort = s
	d.mu.Unlock()

	return nil
}

func (d *Dashboard) SetCurrency(ctx context.Context, symbol string) (settings.Settings, error) {
	return d.settings.SetCurrency(ctx, symbol)
}

func (d *Dashboard) SetBudget(ctx context.Context, raw string) (settings.Settings, error) {
	return d.settings.SetBudget(ctx, raw)
}

func (d *Dashboard) ToggleTheme(ctx context.Context) settings.Settings {
	return d.settings.ToggleTheme(ctx)
}

func (d *Dashboard) Settings() settings.Settings {
	return d.settings.Get()
}

// Records returns the whole collection in insertion order.
func (d *Dashboard) Records() []expense.Record {
	return d.expenses.List()
}

// Snapshot computes every derived view from the current state. The table, summary
// and charts follow the filter; the budget always covers the current calendar month.
func (d *Dashboard) Snapshot() View {
	d.mu.Lock()
	spec, sortBy := d.filter, d.sort
	d.mu.Unlock()

	today := d.now()
	cfg := d.settings.Get()
	all := d.expenses.List()

	bounds := filter.Resolve(spec, today)
	visible := filter.Apply(all, bounds)
	summary := aggregate.Summarize(visible)
	budget := aggregate.BudgetStatus(all, cfg.MonthlyBudget, today.Format("2006-01"))

	v := View{
		Rows:     toRows(filter.SortRecords(visible, sortBy), cfg.Currency),
		Summary:  toSummaryView(summary, cfg.Currency),
		Budget:   toBudgetView(budget, cfg.Currency),
		Pie:      chart.LayoutPie(categoryPoints(summary), d.canvases.Pie),
		Bar:      chart.LayoutBar(dailyPoints(aggregate.DailyTotals(visible)), d.canvases.Bar),
		Filter:   spec,
		Bounds:   bounds,
		Sort:     sortBy,
		Currency: cfg.Currency,
		Theme:    cfg.Theme,
		Degraded: d.expenses.Degraded(),
	}

	if len(v.Rows) == 0 {
		v.EmptyMessage = EmptyMessage
	}

	return v
}
