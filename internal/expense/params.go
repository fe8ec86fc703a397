package expense

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/apperr"
)

const MaxDescriptionLength = 255

// MaxAmount is the largest value a NUMERIC(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

type CreateParams struct {
	Description string
	Amount      decimal.Decimal
	CategoryID  *int64
	Date        time.Time
}

// Validate normalizes p and reports every invalid field.
func (p *CreateParams) Validate() error {
	var fields apperr.Fields

	p.Description = strings.TrimSpace(p.Description)
	validateDescription(&fields, p.Description)

	p.Amount = p.Amount.Round(2)
	validateAmount(&fields, p.Amount)

	validateCategoryID(&fields, p.CategoryID)

	if p.Date.IsZero() {
		fields.Add("date", "Date is required")
	}

	return fields.Err()
}

// CategoryChange distinguishes an omitted category from an explicit null.
type CategoryChange struct {
	Set bool
	ID  *int64 // nil with Set clears the category
}

// UpdateParams holds a partial update; nil fields are left untouched.
type UpdateParams struct {
	Description *string
	Amount      *decimal.Decimal
	Category    CategoryChange
	Date        *time.Time
}

func (p UpdateParams) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && !p.Category.Set && p.Date == nil
}

// Validate rejects an empty update, then normalizes and checks the set fields.
func (p *UpdateParams) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyUpdate
	}

	var fields apperr.Fields

	if p.Description != nil {
		p.Description = new(strings.TrimSpace(*p.Description))
		validateDescription(&fields, *p.Description)
	}

	if p.Amount != nil {
		p.Amount = new(p.Amount.Round(2))
		validateAmount(&fields, *p.Amount)
	}

	if p.Category.Set {
		validateCategoryID(&fields, p.Category.ID)
	}

	if p.Date != nil && p.Date.IsZero() {
		fields.Add("date", "Date is required")
	}

	return fields.Err()
}

func validateDescription(fields *apperr.Fields, d string) {
	switch n := utf8.RuneCountInString(d); {
	case n == 0:
		fields.Add("description", "Description is required")
	case n > MaxDescriptionLength:
		fields.Add("description", "Description must be at most 255 characters")
	}
}

func validateAmount(fields *apperr.Fields, a decimal.Decimal) {
	switch {
	case !a.IsPositive():
		fields.Add("amount", "Amount must be positive")
	case a.GreaterThan(MaxAmount):
		fields.Add("amount", "Amount must be at most 99999999.99")
	}
}

func validateCategoryID(fields *apperr.Fields, id *int64) {
	if id != nil && *id <= 0 {
		fields.Add("category_id", "Category ID must be a positive integer")
	}
}
