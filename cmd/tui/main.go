package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendview/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendview/internal/chart"
	"github.com/MrJamesThe3rd/spendview/internal/config"
	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/spendview/internal/expense/store"
	"github.com/MrJamesThe3rd/spendview/internal/export"
	"github.com/MrJamesThe3rd/spendview/internal/importer"
	"github.com/MrJamesThe3rd/spendview/internal/matching"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
	"github.com/MrJamesThe3rd/spendview/internal/storage"
)

type model struct {
	cfg             *config.Config
	dash            *dashboard.Dashboard
	matchingService *matching.Service
	importService   *importer.Service
	exportService   *export.Service

	currentView View

	expensesView view.ExpensesModel
	importView   view.ImportModel
	exportView   view.ExportModel
	settingsView view.SettingsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewExpenses View = 1
	ViewImport   View = 2
	ViewExport   View = 3
	ViewSettings View = 4
)

func initialModel(cfg *config.Config, dash *dashboard.Dashboard, expenses *expense.Service) model {
	matchSvc := matching.NewService(expenses)
	impSvc := importer.NewService()
	expSvc := export.NewService(expenses)

	return model{
		cfg:             cfg,
		dash:            dash,
		matchingService: matchSvc,
		importService:   impSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
		expensesView:    view.NewExpensesModel(dash, matchSvc),
		importView:      view.NewImportModel(dash, impSvc),
		exportView:      view.NewExportModel(expSvc, cfg.Export.Dir, dash.Settings().Theme),
		settingsView:    view.NewSettingsModel(dash),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.dash, m.matchingService)

				return m, m.expensesView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.dash, m.importService)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.cfg.Export.Dir, m.dash.Settings().Theme)

				return m, m.exportView.Init()
			case "4":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.dash)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	var screen view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + "\n\n" +
				"1. Dashboard\n" +
				"2. Import Expenses\n" +
				"3. Export Expenses\n" +
				"4. Settings\n\n" +
				"q. Quit",
		)
	case ViewExpenses:
		screen = m.expensesView
	case ViewImport:
		screen = m.importView
	case ViewExport:
		screen = m.exportView
	case ViewSettings:
		screen = m.settingsView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(screen.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Padding(1, 1, 0).Render(screen.Title()),
		screen.View(),
		help,
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := storage.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	expenses := expense.NewService(expenseStore.New(store))
	dash := dashboard.New(expenses, settings.NewService(store), dashboard.WithCanvases(dashboard.Canvases{
		Pie: chart.Canvas{Width: cfg.Charts.PieWidth, Height: cfg.Charts.PieHeight},
		Bar: chart.Canvas{Width: cfg.Charts.BarWidth, Height: cfg.Charts.BarHeight},
	}))

	if err := dash.Load(context.Background()); err != nil {
		slog.Warn("failed to load expenses, starting empty", "error", err)
	}

	p := tea.NewProgram(initialModel(cfg, dash, expenses), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
