package report

import (
	"github.com/caszofficial/Expense-Control/internal/report"
)

type monthlyResponse struct {
	Month string  `json:"month"`
	Year  int     `json:"year"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type categoryTotalResponse struct {
	CategoryID    *int64  `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	CategoryColor string  `json:"category_color"`
	Total         float64 `json:"total"`
	Count         int64   `json:"count"`
	Percentage    float64 `json:"percentage"`
}

func toMonthlyResponse(totals []report.MonthlyTotal) []monthlyResponse {
	resp := make([]monthlyResponse, len(totals))
	for i, t := range totals {
		resp[i] = monthlyResponse{
			Month: t.Month,
			Year:  t.Year,
			Total: t.Total.InexactFloat64(),
			Count: t.Count,
		}
	}

	return resp
}

func toCategoryResponse(totals []report.CategoryTotal) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{
			CategoryID:    t.CategoryID,
			CategoryName:  t.CategoryName,
			CategoryColor: t.CategoryColor,
			Total:         t.Total.InexactFloat64(),
			Count:         t.Count,
			Percentage:    t.Percentage.InexactFloat64(),
		}
	}

	return resp
}
