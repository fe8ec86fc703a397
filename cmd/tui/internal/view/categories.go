package view

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caszofficial/Expense-Control/internal/client"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type categoriesState int

const (
	categoriesStateBrowse categoriesState = iota
	categoriesStateForm
	categoriesStateDelete
)

type CategoriesModel struct {
	CommonModel
	api *client.Client

	state      categoriesState
	table      table.Model
	categories []client.Category

	form    *huh.Form
	editing *client.Category
	input   *client.CategoryInput
	confirm *bool

	loading bool
	err     error
	status  string
}

func NewCategoriesModel(api *client.Client) CategoriesModel {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Name", Width: 24},
		{Title: "Color", Width: 10},
		{Title: "Created", Width: 12},
	}

	return CategoriesModel{
		api:     api,
		table:   newTable(columns),
		input:   &client.CategoryInput{},
		confirm: new(false),
		loading: true,
	}
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.state != categoriesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | d: delete | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.categories = msg.categories
			m.refreshTable()
		}

		return m, nil

	case categorySavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = describeError(msg.err)
		}

		m.closeForm()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	if m.state != categoriesStateBrowse {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.api.Invalidate()
			m.loading = true

			return m, m.loadCmd()
		case "n":
			m.editing = nil
			*m.input = client.CategoryInput{Color: "#3b82f6"}

			return m.openForm(categoriesStateForm, m.buildForm())
		case "e":
			c := m.selected()
			if c == nil {
				return m, nil
			}

			m.editing = c
			*m.input = client.CategoryInput{Name: c.Name, Color: c.Color}

			return m.openForm(categoriesStateForm, m.buildForm())
		case "d":
			c := m.selected()
			if c == nil {
				return m, nil
			}

			m.editing = c
			*m.confirm = false

			return m.openForm(categoriesStateDelete, huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %q?", c.Name)).
					Description("Its expenses are kept without a category.").
					Affirmative("Delete").
					Negative("Cancel").
					Value(m.confirm),
			)).WithShowHelp(false))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) openForm(state categoriesState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m *CategoriesModel) closeForm() {
	m.state = categoriesStateBrowse
	m.form = nil
	m.editing = nil
	m.table.Focus()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == categoriesStateDelete {
		if !*m.confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.editing.ID)
	}

	return m, m.saveCmd()
}

func (m CategoriesModel) selected() *client.Category {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.categories) {
		return nil
	}

	return &m.categories[idx]
}

func (m CategoriesModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.input.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Color").
				Placeholder("#RRGGBB").
				Value(&m.input.Color).
				Validate(func(s string) error {
					if !hexColor.MatchString(strings.TrimSpace(s)) {
						return errors.New("color must look like #RRGGBB")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(describeError(m.err)) + "\n\n(r to retry, Esc to go back)")
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state != categoriesStateBrowse && m.form != nil {
		title := "New Category"

		switch {
		case m.state == categoriesStateDelete:
			title = "Delete Category"
		case m.editing != nil:
			title = "Edit Category"
		}

		panel := panelStyle.Width(44).Render(headerStyle.Render(title) + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CategoriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.categories))

	for _, c := range m.categories {
		rows = append(rows, table.Row{
			swatch(c.Color),
			c.Name,
			c.Color,
			c.CreatedAt.Format("2006-01-02"),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type categoriesLoadedMsg struct {
	categories []client.Category
	err        error
}

type categorySavedMsg struct {
	status string
	err    error
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		categories, err := api.Categories(ctx)

		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m CategoriesModel) saveCmd() tea.Cmd {
	api := m.api
	in := client.CategoryInput{
		Name:  strings.TrimSpace(m.input.Name),
		Color: strings.TrimSpace(m.input.Color),
	}

	var editingID int64
	if m.editing != nil {
		editingID = m.editing.ID
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if editingID == 0 {
			c, err := api.CreateCategory(ctx, in)
			if err != nil {
				return categorySavedMsg{err: err}
			}

			return categorySavedMsg{status: fmt.Sprintf("Created category %q.", c.Name)}
		}

		c, err := api.UpdateCategory(ctx, editingID, in)
		if err != nil {
			return categorySavedMsg{err: err}
		}

		return categorySavedMsg{status: fmt.Sprintf("Updated category %q.", c.Name)}
	}
}

func (m CategoriesModel) deleteCmd(id int64) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := api.DeleteCategory(ctx, id); err != nil {
			return categorySavedMsg{err: err}
		}

		return categorySavedMsg{status: "Category deleted."}
	}
}
