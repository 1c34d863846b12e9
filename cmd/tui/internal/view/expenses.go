package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/filter"
	"github.com/MrJamesThe3rd/spendview/internal/matching"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateTimeframe
	expensesStateAdd
	expensesStateEdit
	expensesStateDelete
)

var sortCycle = []filter.SortField{filter.SortNone, filter.SortDate, filter.SortAmount, filter.SortCategory}

// ExpensesModel is the dashboard screen: the filtered table with its summary, budget and charts.
type ExpensesModel struct {
	CommonModel
	dash     *dashboard.Dashboard
	matching *matching.Service

	state           expensesState
	table           table.Model
	timeframePicker TimeframePicker
	form            *huh.Form
	snapshot        dashboard.View
	status          string

	// bound holds the huh field values and is shared by every copy of the model.
	bound *expenseForm
}

type expenseForm struct {
	amount   string
	category string
	date     string
	notes    string
	field    expense.Field
	value    string
	confirm  bool
}

func NewExpensesModel(dash *dashboard.Dashboard, matchSvc *matching.Service) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 14},
		{Title: "Category", Width: 16},
		{Title: "Notes", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m := ExpensesModel{
		dash:     dash,
		matching: matchSvc,
		table:    t,
		bound:    &expenseForm{},
	}
	m.refresh()

	return m
}

func (m ExpensesModel) Title() string { return "Dashboard" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStateBrowse:
		return "Esc: back | a: add | e: edit | d: delete | f: filter | s: sort | o: order | t: theme"
	case expensesStateTimeframe:
		return "Esc: back | Enter: select"
	}

	return "Navigate form | Esc: cancel"
}

func (m ExpensesModel) Init() tea.Cmd {
	return nil
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		if err := m.dash.SetFilter(msg.Spec); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
		}

		m.state = expensesStateBrowse
		m.table.Focus()
		m.refresh()

		return m, nil

	case expenseSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-24, 5))

		return m, nil
	}

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	case expensesStateTimeframe:
		return m.updateTimeframe(msg)
	case expensesStateAdd, expensesStateEdit, expensesStateDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		case "a":
			return m.startAdd()
		case "e":
			return m.startEdit()
		case "d":
			return m.startDelete()
		case "f":
			m.timeframePicker = NewTimeframePicker(m.dash.Filter().Range)
			m.state = expensesStateTimeframe
			m.table.Blur()

			return m, nil
		case "s":
			current := m.snapshot.Sort
			current.Field = sortCycle[(indexOf(sortCycle, current.Field)+1)%len(sortCycle)]

			return m.applySort(current)
		case "o":
			current := m.snapshot.Sort
			current.Desc = !current.Desc

			return m.applySort(current)
		case "t":
			ctx, cancel := StoreCtx()
			defer cancel()

			m.dash.ToggleTheme(ctx)
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			m.state = expensesStateBrowse
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExpensesModel) applySort(s filter.Sort) (tea.Model, tea.Cmd) {
	if err := m.dash.SetSort(s); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
	}

	m.refresh()

	return m, nil
}

func (m ExpensesModel) startAdd() (tea.Model, tea.Cmd) {
	m.bound = &expenseForm{date: time.Now().Format(time.DateOnly)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.bound.amount),

			huh.NewInput().
				Key("category").
				Title("Category").
				Suggestions(m.matching.Suggest("")).
				Value(&m.bound.category),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.bound.date),

			huh.NewInput().
				Key("notes").
				Title("Notes (optional)").
				Value(&m.bound.notes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) startEdit() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}

	m.bound = &expenseForm{field: expense.FieldNotes, value: row.Notes}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[expense.Field]().
				Key("field").
				Title("Field").
				Options(
					huh.NewOption("Amount", expense.FieldAmount),
					huh.NewOption("Date", expense.FieldDate),
					huh.NewOption("Category", expense.FieldCategory),
					huh.NewOption("Notes", expense.FieldNotes),
				).
				Value(&m.bound.field),

			huh.NewInput().
				Key("value").
				Title("New value").
				Description("Amounts accept the currency symbol, dates MM/DD/YYYY").
				Value(&m.bound.value),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) startDelete() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}

	m.bound = &expenseForm{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s %s on %s?", row.Category, row.DisplayAmount, row.DisplayDate)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.bound.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case expensesStateAdd:
		return m, m.addCmd()
	case expensesStateEdit:
		return m, m.editCmd()
	case expensesStateDelete:
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m ExpensesModel) View() string {
	p := PaletteFor(m.snapshot.Theme)

	if m.state == expensesStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	header := fmt.Sprintf(
		"Filter: %s | Sort: %s | Currency: %s",
		m.active(p, m.filterLabel()),
		m.active(p, m.sortLabel()),
		m.active(p, m.snapshot.Currency),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Render(m.table.View())

	if len(m.snapshot.Rows) == 0 {
		tableView = lipgloss.NewStyle().Faint(true).Padding(1).Render(m.snapshot.EmptyMessage)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, tableView, "  ", m.summaryView(p))

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Width(48).
			Render(m.form.View())

		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panel)
	}

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		renderPie(p, m.snapshot.Pie, m.snapshot.Currency),
		"  ",
		renderBar(p, m.snapshot.Bar),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
		"",
		charts,
	)

	if m.snapshot.Degraded {
		content = errorText(p, "Storage unavailable: changes are kept in memory only.") + "\n" + content
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ExpensesModel) summaryView(p Palette) string {
	s := m.snapshot.Summary
	b := m.snapshot.Budget

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Total: " + s.TotalLabel),
		"",
	}
	lines = append(lines, s.CategoryLines...)
	lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render("This Month"),
		"Budget:    "+b.BudgetLabel,
		"Spent:     "+b.SpentLabel,
		"Remaining: "+b.RemainingLabel,
	)

	switch b.StatusText {
	case dashboard.StatusOver:
		lines = append(lines, errorText(p, b.StatusText))
	case dashboard.StatusUnder:
		lines = append(lines, lipgloss.NewStyle().Foreground(p.Good).Render(b.StatusText))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m ExpensesModel) active(p Palette, s string) string {
	return lipgloss.NewStyle().Foreground(p.Accent).Render(s)
}

func (m ExpensesModel) filterLabel() string {
	label := RangeLabel(m.snapshot.Filter.Range)
	if m.snapshot.Filter.Range != filter.RangeCustom {
		return label
	}

	start, end := "…", "…"
	if m.snapshot.Bounds.Start != nil {
		start = *m.snapshot.Bounds.Start
	}

	if m.snapshot.Bounds.End != nil {
		end = *m.snapshot.Bounds.End
	}

	return fmt.Sprintf("%s (%s to %s)", label, start, end)
}

func (m ExpensesModel) sortLabel() string {
	s := m.snapshot.Sort
	if s.Field == filter.SortNone {
		return "entry order"
	}

	if s.Desc {
		return string(s.Field) + " ↓"
	}

	return string(s.Field) + " ↑"
}

func (m *ExpensesModel) refresh() {
	m.snapshot = m.dash.Snapshot()

	s := table.DefaultStyles()
	p := PaletteFor(m.snapshot.Theme)
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)

	rows := make([]table.Row, 0, len(m.snapshot.Rows))
	for _, r := range m.snapshot.Rows {
		rows = append(rows, table.Row{r.DisplayDate, r.DisplayAmount, r.Category, r.Notes})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m ExpensesModel) selectedRow() (dashboard.Row, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snapshot.Rows) {
		return dashboard.Row{}, false
	}

	return m.snapshot.Rows[idx], true
}

func indexOf(fields []filter.SortField, f filter.SortField) int {
	for i, candidate := range fields {
		if candidate == f {
			return i
		}
	}

	return 0
}

// Messages

type expenseSavedMsg struct {
	status string
	err    error
}

func (m ExpensesModel) addCmd() tea.Cmd {
	draft := expense.Draft{
		Amount:   m.bound.amount,
		Category: m.bound.category,
		Date:     m.bound.date,
		Notes:    m.bound.notes,
	}
	dash, matchSvc := m.dash, m.matching

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		closest, misspelled := matchSvc.Closest(draft.Category)

		rec, err := dash.AddExpense(ctx, draft)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		status := fmt.Sprintf("Added %s expense.", rec.Category)
		if misspelled {
			status += fmt.Sprintf(" Did you mean %s? Press e to fix it.", closest)
		}

		return expenseSavedMsg{status: status}
	}
}

func (m ExpensesModel) editCmd() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}

	field, value := m.bound.field, m.bound.value
	dash := m.dash

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if _, err := dash.EditExpense(ctx, row.ID, field, value); err != nil {
			var verr *expense.ValidationError
			if errors.As(err, &verr) {
				return expenseSavedMsg{err: fmt.Errorf("edit rejected, %w", verr)}
			}

			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{status: "Saved."}
	}
}

func (m ExpensesModel) deleteCmd() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || !m.bound.confirm {
		return func() tea.Msg { return expenseSavedMsg{} }
	}

	dash := m.dash

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if !dash.DeleteExpense(ctx, row.ID) {
			return expenseSavedMsg{err: expense.ErrNotFound}
		}

		return expenseSavedMsg{status: "Deleted."}
	}
}
