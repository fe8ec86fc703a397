package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/apperr"
)

var (
	ErrNotFound         = apperr.NotFound("Expense not found")
	ErrCategoryNotFound = apperr.Reference("Category not found")
	ErrEmptyUpdate      = apperr.Validation(apperr.FieldError{
		Field:   "body",
		Message: "At least one field must be provided for update",
	})
)

// Expense is a single recorded outflow of money.
type Expense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	CategoryID  *int64
	Category    *CategoryInfo // Loaded via JOIN
	Date        time.Time     // UTC midnight
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryInfo is the display data of the category an expense belongs to.
type CategoryInfo struct {
	Name  string
	Color string
}
