package expense

import (
	"time"

	"github.com/caszofficial/Expense-Control/internal/expense"
)

type expenseResponse struct {
	ID            int64     `json:"id"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	CategoryID    *int64    `json:"category_id"`
	CategoryName  *string   `json:"category_name,omitempty"`
	CategoryColor *string   `json:"category_color,omitempty"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Expenses []expenseResponse `json:"expenses"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toResponse(e *expense.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.InexactFloat64(),
		CategoryID:  e.CategoryID,
		Date:        e.Date.Format(time.DateOnly),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if e.Category != nil {
		resp.CategoryName = &e.Category.Name
		resp.CategoryColor = &e.Category.Color
	}

	return resp
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}
