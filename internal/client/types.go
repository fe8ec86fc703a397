package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}

	d.Time = t

	return nil
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Expense struct {
	ID            int64           `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *int64          `json:"category_id"`
	CategoryName  *string         `json:"category_name,omitempty"`
	CategoryColor *string         `json:"category_color,omitempty"`
	Date          Date            `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ExpenseInput struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *int64          `json:"category_id"`
	Date        Date            `json:"date"`
}

// ExpensePatch is a partial update. Nil fields are omitted; ClearCategory
// sends an explicit null category_id.
type ExpensePatch struct {
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *int64
	ClearCategory bool
	Date          *Date
}

func (p ExpensePatch) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 4)

	if p.Description != nil {
		body["description"] = *p.Description
	}

	if p.Amount != nil {
		body["amount"] = *p.Amount
	}

	switch {
	case p.ClearCategory:
		body["category_id"] = nil
	case p.CategoryID != nil:
		body["category_id"] = *p.CategoryID
	}

	if p.Date != nil {
		body["date"] = *p.Date
	}

	return json.Marshal(body)
}

// ExpenseFilter mirrors the list filters of GET /expenses.
type ExpenseFilter struct {
	CategoryID *int64
	StartDate  *Date
	EndDate    *Date
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

type MonthlyTotal struct {
	Month string          `json:"month"`
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type CategoryTotal struct {
	CategoryID    *int64          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Total         decimal.Decimal `json:"total"`
	Count         int64           `json:"count"`
	Percentage    decimal.Decimal `json:"percentage"`
}

type ImportResult struct {
	Imported int       `json:"imported"`
	Expenses []Expense `json:"expenses"`
}
