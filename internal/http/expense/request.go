package expense

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/expense"
	"github.com/caszofficial/Expense-Control/internal/http/render"
)

// nullableID records whether category_id was present in the body at all, so
// an explicit null can be told apart from an omitted key.
type nullableID struct {
	Set bool
	ID  *int64
}

func (n *nullableID) UnmarshalJSON(data []byte) error {
	n.Set = true

	if bytes.Equal(data, []byte("null")) {
		n.ID = nil
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}

	n.ID = &id

	return nil
}

type createExpenseRequest struct {
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *int64           `json:"category_id"`
	Date        *string          `json:"date"`
}

// params converts the body. Missing fields are left zero for the service to
// report alongside every other invalid field.
func (req createExpenseRequest) params() (expense.CreateParams, error) {
	p := expense.CreateParams{
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}

	if req.Amount != nil {
		p.Amount = *req.Amount
	}

	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return p, err
		}

		p.Date = d
	}

	return p, nil
}

type updateExpenseRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  nullableID       `json:"category_id"`
	Date        *string          `json:"date"`
}

func (req updateExpenseRequest) params() (expense.UpdateParams, error) {
	p := expense.UpdateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    expense.CategoryChange{Set: req.CategoryID.Set, ID: req.CategoryID.ID},
	}

	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return p, err
		}

		p.Date = &d
	}

	return p, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := render.ParseDate(s)
	if err != nil {
		return time.Time{}, apperr.Validation(apperr.FieldError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
	}

	return d, nil
}

// listFilter reads the optional list filters from the query string.
func listFilter(r *http.Request) (expense.ListFilter, error) {
	var (
		q      = r.URL.Query()
		fields apperr.Fields
	)

	filter := expense.ListFilter{
		CategoryID: render.QueryID(q, "category_id", &fields),
		StartDate:  render.QueryDate(q, "start_date", &fields),
		EndDate:    render.QueryDate(q, "end_date", &fields),
		MinAmount:  render.QueryAmount(q, "min_amount", &fields),
		MaxAmount:  render.QueryAmount(q, "max_amount", &fields),
	}

	return filter, fields.Err()
}
