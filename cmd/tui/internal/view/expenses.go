package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/caszofficial/Expense-Control/internal/client"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateFilter
	expensesStateForm
	expensesStateDelete
)

// expenseForm holds the string bindings of the create/edit form.
type expenseForm struct {
	Description string
	Amount      string
	CategoryID  int64
	Date        string
}

// filterForm holds the string bindings of the filter form.
type filterForm struct {
	CategoryID int64
	StartDate  string
	EndDate    string
	MinAmount  string
	MaxAmount  string
}

type ExpensesModel struct {
	CommonModel
	api *client.Client
	now func() time.Time

	state      expensesState
	table      table.Model
	expenses   []client.Expense
	categories []client.Category

	form    *huh.Form
	editing *client.Expense
	input   *expenseForm
	filters *filterForm
	confirm *bool

	filter  client.ExpenseFilter
	loading bool
	err     error
	status  string
}

func NewExpensesModel(api *client.Client, now func() time.Time) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 36},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
	}

	return ExpensesModel{
		api:     api,
		now:     now,
		table:   newTable(columns),
		input:   &expenseForm{},
		filters: &filterForm{},
		confirm: new(false),
		loading: true,
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.state != expensesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | d: delete | f: filter | c: clear filter | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.expenses = msg.expenses
			m.categories = msg.categories
			m.refreshTable()
		}

		return m, nil

	case expenseSavedMsg:
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

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			*m.input = expenseForm{Date: m.now().Format(time.DateOnly)}

			return m.openForm(expensesStateForm, m.buildExpenseForm())
		case "e":
			e := m.selected()
			if e == nil {
				return m, nil
			}

			m.editing = e
			*m.input = expenseForm{
				Description: e.Description,
				Amount:      e.Amount.String(),
				Date:        FormatDate(e.Date),
			}

			if e.CategoryID != nil {
				m.input.CategoryID = *e.CategoryID
			}

			return m.openForm(expensesStateForm, m.buildExpenseForm())
		case "d":
			e := m.selected()
			if e == nil {
				return m, nil
			}

			m.editing = e
			*m.confirm = false

			return m.openForm(expensesStateDelete, huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %q?", e.Description)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(m.confirm),
			)).WithShowHelp(false))
		case "f":
			return m.openForm(expensesStateFilter, m.buildFilterForm())
		case "c":
			m.filter = client.ExpenseFilter{}
			*m.filters = filterForm{}
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) openForm(state expensesState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m *ExpensesModel) closeForm() {
	m.state = expensesStateBrowse
	m.form = nil
	m.editing = nil
	m.table.Focus()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	switch m.state {
	case expensesStateFilter:
		m.filter = m.filters.toFilter()
		m.closeForm()
		m.loading = true

		return m, m.loadCmd()
	case expensesStateDelete:
		if !*m.confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.editing.ID)
	}

	return m, m.saveCmd()
}

func (m ExpensesModel) selected() *client.Expense {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	return &m.expenses[idx]
}

func (m ExpensesModel) categoryOptions(none string) []huh.Option[int64] {
	opts := []huh.Option[int64]{huh.NewOption(none, int64(0))}
	for _, c := range m.categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	return opts
}

func (m ExpensesModel) buildExpenseForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&m.input.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&m.input.Amount).
				Validate(validateAmount(true)),
			huh.NewSelect[int64]().
				Title("Category").
				Options(m.categoryOptions("No category")...).
				Value(&m.input.CategoryID),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.input.Date).
				Validate(validateDate(true)),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExpensesModel) buildFilterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Category").
				Options(m.categoryOptions("All categories")...).
				Value(&m.filters.CategoryID),
			huh.NewInput().Title("From").Placeholder("YYYY-MM-DD").Value(&m.filters.StartDate).Validate(validateDate(false)),
			huh.NewInput().Title("To").Placeholder("YYYY-MM-DD").Value(&m.filters.EndDate).Validate(validateDate(false)),
			huh.NewInput().Title("Min amount").Value(&m.filters.MinAmount).Validate(validateAmount(false)),
			huh.NewInput().Title("Max amount").Value(&m.filters.MaxAmount).Validate(validateAmount(false)),
		),
	).WithWidth(45).WithShowHelp(false)
}

func validateAmount(required bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if required {
				return errors.New("amount is required")
			}
			return nil
		}

		d, err := decimal.NewFromString(s)
		if err != nil {
			return errors.New("amount must be a number")
		}

		if required && !d.IsPositive() {
			return errors.New("amount must be greater than zero")
		}

		return nil
	}
}

func validateDate(required bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" && !required {
			return nil
		}

		if _, err := time.Parse(time.DateOnly, s); err != nil {
			return errors.New("date must be YYYY-MM-DD")
		}

		return nil
	}
}

// toFilter converts validated form input. Empty fields are left unset.
func (f filterForm) toFilter() client.ExpenseFilter {
	var filter client.ExpenseFilter

	if f.CategoryID != 0 {
		filter.CategoryID = new(f.CategoryID)
	}

	filter.StartDate = optionalDate(f.StartDate)
	filter.EndDate = optionalDate(f.EndDate)
	filter.MinAmount = optionalAmount(f.MinAmount)
	filter.MaxAmount = optionalAmount(f.MaxAmount)

	return filter
}

func optionalDate(s string) *client.Date {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return nil
	}

	return &client.Date{Time: t}
}

func optionalAmount(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}

	return &d
}

func (m ExpensesModel) filterLabel() string {
	var parts []string

	if m.filter.CategoryID != nil {
		name := strconv.FormatInt(*m.filter.CategoryID, 10)
		for _, c := range m.categories {
			if c.ID == *m.filter.CategoryID {
				name = c.Name
			}
		}

		parts = append(parts, "category "+name)
	}

	if m.filter.StartDate != nil || m.filter.EndDate != nil {
		parts = append(parts, DateRange{Start: m.filter.StartDate, End: m.filter.EndDate}.String())
	}

	if m.filter.MinAmount != nil {
		parts = append(parts, "≥ "+FormatAmount(*m.filter.MinAmount))
	}

	if m.filter.MaxAmount != nil {
		parts = append(parts, "≤ "+FormatAmount(*m.filter.MaxAmount))
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, ", ")
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(describeError(m.err)) + "\n\n(r to retry, Esc to go back)")
	}

	var total decimal.Decimal
	for _, e := range m.expenses {
		total = total.Add(e.Amount)
	}

	header := fmt.Sprintf("Filter [f]: %s | %d expenses | Total %s",
		activeStyle(m.filterLabel()), len(m.expenses), FormatAmount(total))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != expensesStateBrowse && m.form != nil {
		title := "Filter Expenses"

		switch {
		case m.state == expensesStateDelete:
			title = "Delete Expense"
		case m.state == expensesStateForm && m.editing != nil:
			title = "Edit Expense"
		case m.state == expensesStateForm:
			title = "New Expense"
		}

		panel := panelStyle.Width(48).Render(headerStyle.Render(title) + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))

	for _, e := range m.expenses {
		category := "-"
		if e.CategoryName != nil {
			category = *e.CategoryName
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			e.Description,
			category,
			FormatAmount(e.Amount),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type expensesLoadedMsg struct {
	expenses   []client.Expense
	categories []client.Category
	err        error
}

type expenseSavedMsg struct {
	status string
	err    error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	api := m.api
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var msg expensesLoadedMsg

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			msg.expenses, err = api.Expenses(gctx, filter)

			return err
		})

		g.Go(func() error {
			var err error
			msg.categories, err = api.Categories(gctx)

			return err
		})

		msg.err = g.Wait()

		return msg
	}
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	api := m.api
	in := *m.input

	var editingID int64
	if m.editing != nil {
		editingID = m.editing.ID
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		date, err := time.Parse(time.DateOnly, strings.TrimSpace(in.Date))
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		description := strings.TrimSpace(in.Description)

		if editingID == 0 {
			input := client.ExpenseInput{
				Description: description,
				Amount:      amount,
				Date:        client.Date{Time: date},
			}

			if in.CategoryID != 0 {
				input.CategoryID = new(in.CategoryID)
			}

			e, err := api.CreateExpense(ctx, input)
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			return expenseSavedMsg{status: fmt.Sprintf("Created expense #%d.", e.ID)}
		}

		patch := client.ExpensePatch{
			Description: &description,
			Amount:      &amount,
			Date:        &client.Date{Time: date},
		}

		if in.CategoryID == 0 {
			patch.ClearCategory = true
		} else {
			patch.CategoryID = new(in.CategoryID)
		}

		if _, err := api.UpdateExpense(ctx, editingID, patch); err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{status: fmt.Sprintf("Updated expense #%d.", editingID)}
	}
}

func (m ExpensesModel) deleteCmd(id int64) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := api.DeleteExpense(ctx, id); err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{status: fmt.Sprintf("Deleted expense #%d.", id)}
	}
}
