package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/caszofficial/Expense-Control/internal/client"
)

const importPreviewRows = 10

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	api *client.Client

	state      importState
	filePicker filepicker.Model

	result *client.ImportResult
	status string
	err    error
}

func NewImportModel(api *client.Client) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		api:        api,
		filePicker: fp,
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
			if m.state == importStateResult {
				m.state = importStateFilePick
				m.err = nil
				m.result = nil
				m.status = ""

				return m, m.filePicker.Init()
			}

			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.result = msg.result

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

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a CSV file (date, description, amount, category):\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.err != nil {
		return style.Render(errorStyle.Render(describeError(m.err)) + "\n\n(Esc to go back)")
	}

	var b strings.Builder

	b.WriteString(okStyle.Render(fmt.Sprintf("Imported %d expenses.", m.result.Imported)))
	b.WriteString("\n\n")

	for i, e := range m.result.Expenses {
		if i == importPreviewRows {
			fmt.Fprintf(&b, "... and %d more\n", len(m.result.Expenses)-importPreviewRows)
			break
		}

		fmt.Fprintf(&b, "%s  %12s  %s\n", FormatDate(e.Date), FormatAmount(e.Amount), e.Description)
	}

	b.WriteString("\n(Esc to go back)")

	return style.Render(b.String())
}

type importResultMsg struct {
	result *client.ImportResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), transferTimeout)
		defer cancel()

		result, err := api.ImportCSV(ctx, filepath.Base(path), f)

		return importResultMsg{result: result, err: err}
	}
}
