package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caszofficial/Expense-Control/internal/client"
)

// Timeframe represents a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = iota
	TimeframeLastMonth
	TimeframeLast3Months
	TimeframeThisYear
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeLast3Months:
		return "Last 3 Months"
	case TimeframeThisYear:
		return "This Year"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// Next cycles through the predefined timeframes, skipping Custom.
func (t Timeframe) Next() Timeframe {
	return (t + 1) % TimeframeCustom
}

// DateRange is an inclusive range of calendar days. A nil bound is open.
type DateRange struct {
	Start *client.Date
	End   *client.Date
}

func (r DateRange) String() string {
	switch {
	case r.Start == nil && r.End == nil:
		return "all time"
	case r.Start == nil:
		return "until " + r.End.String()
	case r.End == nil:
		return "from " + r.Start.String()
	}

	return r.Start.String() + " to " + r.End.String()
}

// Filter applies the range to an expense filter.
func (r DateRange) Filter(f client.ExpenseFilter) client.ExpenseFilter {
	f.StartDate = r.Start
	f.EndDate = r.End

	return f
}

// Range resolves a predefined timeframe relative to now. TimeframeAll and
// TimeframeCustom resolve to an open range.
func (t Timeframe) Range(now time.Time) DateRange {
	day := func(tm time.Time) *client.Date {
		return new(client.NewDate(tm.Year(), tm.Month(), tm.Day()))
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch t {
	case TimeframeThisMonth:
		return DateRange{Start: day(firstOfMonth), End: day(now)}
	case TimeframeLastMonth:
		start := firstOfMonth.AddDate(0, -1, 0)
		return DateRange{Start: day(start), End: day(firstOfMonth.AddDate(0, 0, -1))}
	case TimeframeLast3Months:
		return DateRange{Start: day(firstOfMonth.AddDate(0, -2, 0)), End: day(now)}
	case TimeframeThisYear:
		return DateRange{Start: day(time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)), End: day(now)}
	}

	return DateRange{}
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
type TimeframeSelectedMsg struct {
	Timeframe Timeframe
	Range     DateRange
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(initial Timeframe, now func() time.Time) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   initial,
		now:        now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(msg)
		case timeframeStateCustom:
			return m.updateCustom(msg)
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		selected := TimeframeSelectedMsg{Timeframe: m.selected, Range: m.selected.Range(m.now())}

		return m, func() tea.Msg { return selected }
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}

		m.endInput.Focus()

		return m, textinput.Blink

	case "enter":
		r, err := parseCustomRange(m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}

		m.err = nil
		selected := TimeframeSelectedMsg{Timeframe: TimeframeCustom, Range: r}

		return m, func() tea.Msg { return selected }

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func parseCustomRange(startStr, endStr string) (DateRange, error) {
	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return DateRange{}, errors.New("invalid start date (YYYY-MM-DD)")
	}

	end, err := time.Parse(time.DateOnly, endStr)
	if err != nil {
		return DateRange{}, errors.New("invalid end date (YYYY-MM-DD)")
	}

	if end.Before(start) {
		return DateRange{}, errors.New("end date is before start date")
	}

	return DateRange{Start: &client.Date{Time: start}, End: &client.Date{Time: end}}, nil
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var (
		cmds []tea.Cmd
		c    tea.Cmd
	)

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Timeframe:\n\n"
	for i := TimeframeThisMonth; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
