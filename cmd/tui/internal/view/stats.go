package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/client"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the headline figures of the dashboard.
type Summary struct {
	Total   decimal.Decimal
	Count   int
	Average decimal.Decimal

	// Latest and Previous are the two most recent months with expenses.
	Latest   *client.MonthlyTotal
	Previous *client.MonthlyTotal

	// Trend is the percentage change from Previous to Latest. It is nil when
	// there is no previous month to compare against.
	Trend *decimal.Decimal
}

// Summarize computes the headline figures from a listing and the monthly
// totals, most recent month first.
func Summarize(expenses []client.Expense, monthly []client.MonthlyTotal) Summary {
	var s Summary

	for _, e := range expenses {
		s.Total = s.Total.Add(e.Amount)
	}

	s.Count = len(expenses)
	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	}

	if len(monthly) > 0 {
		s.Latest = &monthly[0]
	}

	if len(monthly) > 1 {
		s.Previous = &monthly[1]

		if s.Previous.Total.IsPositive() {
			trend := s.Latest.Total.Sub(s.Previous.Total).Div(s.Previous.Total).Mul(hundred).Round(1)
			s.Trend = &trend
		}
	}

	return s
}

// Bar is one column of the monthly chart.
type Bar struct {
	Label string
	Total decimal.Decimal
	Width int
}

// MonthlyBars turns monthly totals (most recent first) into chart bars, oldest
// first. The largest total spans maxWidth cells.
func MonthlyBars(monthly []client.MonthlyTotal, maxWidth int) []Bar {
	var peak decimal.Decimal
	for _, m := range monthly {
		peak = decimal.Max(peak, m.Total)
	}

	bars := make([]Bar, 0, len(monthly))

	for _, m := range slices.Backward(monthly) {
		width := 0
		if peak.IsPositive() {
			width = int(m.Total.Mul(decimal.NewFromInt(int64(maxWidth))).Div(peak).Round(0).IntPart())
		}

		if width == 0 && m.Total.IsPositive() {
			width = 1
		}

		bars = append(bars, Bar{Label: monthLabel(m), Total: m.Total, Width: width})
	}

	return bars
}

// monthLabel abbreviates "January", 2024 to "Jan 2024".
func monthLabel(m client.MonthlyTotal) string {
	name := m.Month
	if len(name) > 3 {
		name = name[:3]
	}

	return fmt.Sprintf("%s %d", name, m.Year)
}

func formatTrend(trend *decimal.Decimal) string {
	if trend == nil {
		return faintStyle.Render("n/a")
	}

	s := trend.StringFixed(1) + "%"

	switch {
	case trend.IsPositive():
		return errorStyle.Render("▲ +" + s)
	case trend.IsNegative():
		return okStyle.Render("▼ " + s)
	}

	return "= " + s
}

func renderBars(bars []Bar) string {
	if len(bars) == 0 {
		return faintStyle.Render("No expenses recorded yet.")
	}

	var b strings.Builder

	for _, bar := range bars {
		fmt.Fprintf(&b, "%-9s %s %s\n",
			bar.Label,
			activeStyle(strings.Repeat("█", bar.Width)),
			FormatCompact(bar.Total),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderBreakdown(totals []client.CategoryTotal) string {
	if len(totals) == 0 {
		return faintStyle.Render("No expenses in this period.")
	}

	var b strings.Builder

	for _, t := range totals {
		fmt.Fprintf(&b, "%s %-16s %12s %6s%%  (%d)\n",
			swatch(t.CategoryColor),
			truncate(t.CategoryName, 16),
			FormatAmount(t.Total),
			t.Percentage.StringFixed(1),
			t.Count,
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
