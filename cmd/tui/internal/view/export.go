package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendview/internal/export"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

const exportTimeout = 30 * time.Second

type exportForm struct {
	formats []export.Format
	path    string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service
	theme         settings.Theme

	state   exportState
	err     error
	form    *huh.Form
	bound   *exportForm
	spinner spinner.Model
	written []string
}

func NewExportModel(svc *export.Service, dir string, theme settings.Theme) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PaletteFor(theme).Accent)

	m := ExportModel{
		exportService: svc,
		theme:         theme,
		bound:         &exportForm{formats: []export.Format{export.FormatJSON, export.FormatCSV}, path: dir},
		spinner:       s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Expenses" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.bound.formats, m.bound.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.written = result.paths

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[export.Format]().
				Key("formats").
				Title("Formats").
				Options(
					huh.NewOption("JSON (expenses.json)", export.FormatJSON).Selected(true),
					huh.NewOption("CSV (expenses.csv)", export.FormatCSV).Selected(true),
				).
				Validate(func(f []export.Format) error {
					if len(f) == 0 {
						return errors.New("pick at least one format")
					}
					return nil
				}).
				Value(&m.bound.formats),

			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.bound.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting expenses...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	p := PaletteFor(m.theme)

	if errors.Is(m.err, export.ErrEmpty) {
		return lipgloss.NewStyle().Padding(1).Render(export.EmptyMessage + "\n\n(Esc to go back)")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorText(p, fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Good).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Written:",
			"",
			strings.Join(m.written, "\n"),
		),
	)
}

type exportResultMsg struct {
	paths []string
	err   error
}

func (m ExportModel) runExportCmd(formats []export.Format, dir string) tea.Cmd {
	svc := m.exportService

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		paths := make([]string, 0, len(formats))

		for _, format := range formats {
			path, err := svc.Export(ctx, format, dir)
			if err != nil {
				return exportResultMsg{err: err}
			}

			paths = append(paths, path)
		}

		return exportResultMsg{paths: paths}
	}
}
