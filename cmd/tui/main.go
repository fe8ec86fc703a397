package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/caszofficial/Expense-Control/cmd/tui/internal/view"
	"github.com/caszofficial/Expense-Control/internal/client"
	"github.com/caszofficial/Expense-Control/internal/config"
)

type model struct {
	api  *client.Client
	name string

	currentView View
	health      string

	dashboardView  view.DashboardModel
	expensesView   view.ExpensesModel
	categoriesView view.CategoriesModel
	importView     view.ImportModel
	exportView     view.ExportModel
}

type View int

const (
	ViewMenu       View = 0
	ViewDashboard  View = 1
	ViewExpenses   View = 2
	ViewCategories View = 3
	ViewImport     View = 4
	ViewExport     View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.Client.APIURL, client.WithCache(cfg.Client.CacheSize, cfg.Client.CacheTTL))

	return model{
		api:         api,
		name:        cfg.App.Name,
		currentView: ViewMenu,
		health:      "checking...",
	}
}

type healthMsg struct {
	health *client.Health
	err    error
}

func (m model) checkHealth() tea.Msg {
	ctx, cancel := view.APICtx()
	defer cancel()

	h, err := m.api.Health(ctx)

	return healthMsg{health: h, err: err}
}

func (m model) Init() tea.Cmd {
	return m.checkHealth
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case healthMsg:
		if msg.err != nil {
			m.health = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("unreachable: " + msg.err.Error())
			return m, nil
		}

		m.health = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(msg.health.Status)

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.api, time.Now)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.api, time.Now)

				return m, m.expensesView.Init()
			case "3":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.api)

				return m, m.categoriesView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.api)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.api, time.Now)

				return m, m.exportView.Init()
			case "h":
				m.health = "checking..."
				return m, m.checkHealth
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) active() view.View {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView
	case ViewExpenses:
		return m.expensesView
	case ViewCategories:
		return m.categoriesView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			m.name + "\n\n" +
				"1. Dashboard\n" +
				"2. Expenses\n" +
				"3. Categories\n" +
				"4. Import CSV\n" +
				"5. Export CSV\n\n" +
				"API: " + m.health + "\n\n" +
				"h. Recheck API | q. Quit",
		)
	}

	v := m.active()
	if v == nil {
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).PaddingLeft(1).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return fmt.Sprintf("%s\n%s\n%s", title, v.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
