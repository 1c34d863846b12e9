package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

type settingsForm struct {
	currency string
	budget   string
	dark     bool
}

// SettingsModel edits the currency symbol, the monthly budget and the theme.
type SettingsModel struct {
	CommonModel
	dash *dashboard.Dashboard

	form   *huh.Form
	bound  *settingsForm
	status string
	err    error
}

func NewSettingsModel(dash *dashboard.Dashboard) SettingsModel {
	current := dash.Settings()

	bound := &settingsForm{
		currency: current.Currency,
		budget:   fmt.Sprintf("%.2f", current.MonthlyBudget),
		dark:     current.Theme == settings.ThemeDark,
	}

	m := SettingsModel{dash: dash, bound: bound}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("currency").
				Title("Currency Symbol").
				Value(&bound.currency),

			huh.NewInput().
				Key("budget").
				Title("Monthly Budget").
				Description("0 disables the budget").
				Placeholder("0.00").
				Value(&bound.budget),

			huh.NewConfirm().
				Key("theme").
				Title("Dark theme?").
				Affirmative("Dark").
				Negative("Light").
				Value(&bound.dark),
		),
	).WithWidth(45).WithShowHelp(false)

	return m
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string { return "Esc: back | Enter: save" }

func (m SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.form.State == huh.StateCompleted {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.err = m.save()
	m.status = "Settings saved."

	return m, nil
}

func (m SettingsModel) save() error {
	ctx, cancel := StoreCtx()
	defer cancel()

	if _, err := m.dash.SetCurrency(ctx, m.bound.currency); err != nil {
		return err
	}

	if _, err := m.dash.SetBudget(ctx, m.bound.budget); err != nil {
		return err
	}

	if (m.dash.Settings().Theme == settings.ThemeDark) != m.bound.dark {
		m.dash.ToggleTheme(ctx)
	}

	return nil
}

func (m SettingsModel) View() string {
	p := PaletteFor(m.dash.Settings().Theme)

	if m.form.State != huh.StateCompleted {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorText(p, fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.NewStyle().Foreground(p.Good).Render(m.status) + "\n\n(Esc to go back)",
	)
}
