package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/caszofficial/Expense-Control/internal/client"
)

const chartMonths = 6

type DashboardModel struct {
	CommonModel
	api *client.Client
	now func() time.Time

	timeframe Timeframe
	rng       DateRange

	loading bool
	spinner spinner.Model
	err     error

	expenses   []client.Expense
	monthly    []client.MonthlyTotal
	categories []client.CategoryTotal
}

func NewDashboardModel(api *client.Client, now func() time.Time) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{
		api:       api,
		now:       now,
		timeframe: TimeframeThisMonth,
		rng:       TimeframeThisMonth.Range(now()),
		loading:   true,
		spinner:   s,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | t: timeframe | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.expenses = msg.expenses
			m.monthly = msg.monthly
			m.categories = msg.categories
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.api.Invalidate()
			m.loading = true

			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		case "t":
			m.timeframe = m.timeframe.Next()
			m.rng = m.timeframe.Range(m.now())
			m.loading = true

			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(describeError(m.err)) + "\n\n(r to retry, Esc to go back)")
	}

	s := Summarize(m.expenses, m.monthly)

	header := fmt.Sprintf("Timeframe [t]: %s  %s",
		activeStyle(m.timeframe.String()),
		faintStyle.Render("("+m.rng.String()+")"),
	)

	latest := "n/a"
	latestLabel := "Latest month"

	if s.Latest != nil {
		latest = FormatAmount(s.Latest.Total)
		latestLabel = monthLabel(*s.Latest)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total", FormatAmount(s.Total), fmt.Sprintf("%d expenses", s.Count)),
		card(latestLabel, latest, "vs previous "+formatTrend(s.Trend)),
		card("Average", FormatAmount(s.Average), "per expense"),
	)

	chart := panelStyle.Render(headerStyle.Render("Last 6 months") + "\n\n" + renderBars(MonthlyBars(m.monthly, 30)))
	breakdown := panelStyle.Render(headerStyle.Render("By category") + "\n\n" + renderBreakdown(m.categories))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		cards,
		lipgloss.JoinHorizontal(lipgloss.Top, chart, breakdown),
	))
}

func card(title, value, note string) string {
	return panelStyle.Width(26).Render(
		faintStyle.Render(title) + "\n" + lipgloss.NewStyle().Bold(true).Render(value) + "\n" + note,
	)
}

type dashboardLoadedMsg struct {
	expenses   []client.Expense
	monthly    []client.MonthlyTotal
	categories []client.CategoryTotal
	err        error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	api := m.api
	rng := m.rng

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var msg dashboardLoadedMsg

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			msg.expenses, err = api.Expenses(gctx, rng.Filter(client.ExpenseFilter{}))

			return err
		})

		g.Go(func() error {
			var err error
			msg.monthly, err = api.MonthlyStats(gctx, chartMonths)

			return err
		})

		g.Go(func() error {
			var err error
			msg.categories, err = api.CategoryStats(gctx, rng.Start, rng.End)

			return err
		})

		msg.err = g.Wait()

		return msg
	}
}
