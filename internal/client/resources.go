package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL(c.baseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	data, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	var h Health
	if err := decodeData(data, &h); err != nil {
		return nil, err
	}

	return &h, nil
}

// healthURL maps .../api to .../health, where the server mounts it.
func healthURL(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "/health"
	}

	u.Path = "/health"
	u.RawQuery = ""

	return u.String()
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, prefixCategories, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) Category(ctx context.Context, id int64) (*Category, error) {
	var out Category
	if err := c.get(ctx, categoryPath(id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var out Category
	if err := c.send(ctx, http.MethodPost, prefixCategories, in, &out, prefixCategories); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*Category, error) {
	var out Category
	if err := c.send(ctx, http.MethodPut, categoryPath(id), in, &out, prefixCategories, prefixExpenses); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, categoryPath(id), nil, nil, prefixCategories, prefixExpenses)
}

func (c *Client) Expenses(ctx context.Context, filter ExpenseFilter) ([]Expense, error) {
	var out []Expense
	if err := c.get(ctx, prefixExpenses, filter.values(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) Expense(ctx context.Context, id int64) (*Expense, error) {
	var out Expense
	if err := c.get(ctx, expensePath(id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	var out Expense
	if err := c.send(ctx, http.MethodPost, prefixExpenses, in, &out, prefixExpenses); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, patch ExpensePatch) (*Expense, error) {
	var out Expense
	if err := c.send(ctx, http.MethodPatch, expensePath(id), patch, &out, prefixExpenses); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, expensePath(id), nil, nil, prefixExpenses)
}

// MonthlyStats returns up to limit months, most recent first. A limit of zero
// uses the server default.
func (c *Client) MonthlyStats(ctx context.Context, limit int) ([]MonthlyTotal, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []MonthlyTotal
	if err := c.get(ctx, prefixExpenses+"/stats/monthly", q, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// CategoryStats returns per-category totals for the inclusive window; nil
// bounds are open.
func (c *Client) CategoryStats(ctx context.Context, start, end *Date) ([]CategoryTotal, error) {
	q := url.Values{}
	if start != nil {
		q.Set("start_date", start.String())
	}

	if end != nil {
		q.Set("end_date", end.String())
	}

	var out []CategoryTotal
	if err := c.get(ctx, prefixExpenses+"/stats/categories", q, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ImportCSV uploads r as the multipart field "file".
func (c *Client) ImportCSV(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("copying csv: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, prefixExpenses+"/import", &body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	data, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	c.invalidate(prefixExpenses)

	var out ImportResult
	if err := decodeData(data, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ExportCSV streams the filtered expenses as CSV into w.
func (c *Client) ExportCSV(ctx context.Context, filter ExpenseFilter, w io.Writer) error {
	path := prefixExpenses + "/export"
	if q := filter.values(); len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	return nil
}

func (f ExpenseFilter) values() url.Values {
	q := url.Values{}

	if f.CategoryID != nil {
		q.Set("category_id", strconv.FormatInt(*f.CategoryID, 10))
	}

	if f.StartDate != nil {
		q.Set("start_date", f.StartDate.String())
	}

	if f.EndDate != nil {
		q.Set("end_date", f.EndDate.String())
	}

	if f.MinAmount != nil {
		q.Set("min_amount", f.MinAmount.String())
	}

	if f.MaxAmount != nil {
		q.Set("max_amount", f.MaxAmount.String())
	}

	return q
}

func categoryPath(id int64) string {
	return prefixCategories + "/" + strconv.FormatInt(id, 10)
}

func expensePath(id int64) string {
	return prefixExpenses + "/" + strconv.FormatInt(id, 10)
}
