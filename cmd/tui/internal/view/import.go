package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateSourceSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

var sourceLabels = map[importer.Source]string{
	importer.SourceExport: "Spendview CSV export",
	importer.SourceCGD:    "CGD bank statement",
}

type ImportModel struct {
	CommonModel
	dash          *dashboard.Dashboard
	importService *importer.Service

	state          importState
	filePicker     filepicker.Model
	selectedSource importer.Source
	sourceOptions  []importer.Source
	sourceCursor   int

	status string
	err    error
}

func NewImportModel(dash *dashboard.Dashboard, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		dash:          dash,
		importService: impSvc,
		filePicker:    fp,
		sourceOptions: []importer.Source{importer.SourceExport, importer.SourceCGD},
	}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateSourceSelect {
			return m.updateSourceSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d expenses.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateSourceSelect
		return m, nil
	case importStateResult:
		m.state = importStateSourceSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateSourceSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
	case tea.KeyDown:
		if m.sourceCursor < len(m.sourceOptions)-1 {
			m.sourceCursor++
		}
	case tea.KeyEnter:
		m.selectedSource = m.sourceOptions[m.sourceCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSourceSelect:
		return m.viewSourceSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", sourceLabels[m.selectedSource], m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewSourceSelect() string {
	s := "Select Source:\n\n"

	for i, source := range m.sourceOptions {
		cursor := " "
		if i == m.sourceCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, sourceLabels[source])
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	p := PaletteFor(m.dash.Settings().Theme)
	style := lipgloss.NewStyle().Padding(2)

	if m.err != nil {
		return style.Render(errorText(p, m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(p.Good).Render(m.status) + "\n\n(Esc to go back)",
	)
}

// Messages

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	source := m.selectedSource

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		drafts, err := m.importService.Import(source, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		records, err := m.dash.ImportExpenses(ctx, drafts)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(records)}
	}
}
