package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/caszofficial/Expense-Control/internal/client"
)

const apiTimeout = 10 * time.Second

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with thousands separators and two decimals.
func FormatAmount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.InexactFloat64())
}

// FormatCompact renders large amounts with a k or M suffix, for chart labels.
func FormatCompact(d decimal.Decimal) string {
	f := d.InexactFloat64()

	switch {
	case f >= 1_000_000:
		return fmt.Sprintf("%.1fM", f/1_000_000)
	case f >= 1_000:
		return fmt.Sprintf("%.1fk", f/1_000)
	}

	return fmt.Sprintf("%.0f", f)
}

func FormatDate(d client.Date) string {
	return d.Format(time.DateOnly)
}

// APICtx returns a context with a standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
