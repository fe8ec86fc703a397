package report

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/http/render"
	"github.com/caszofficial/Expense-Control/internal/report"
)

type Handler struct {
	svc    *report.Service
	render *render.Renderer
}

func NewHandler(svc *report.Service, rd *render.Renderer) *Handler {
	return &Handler{svc: svc, render: rd}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly", h.monthly)
	r.Get("/categories", h.categories)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	limit := report.DefaultMonthLimit

	if s := strings.TrimSpace(r.URL.Query().Get("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.render.Error(w, r, apperr.Validation(apperr.FieldError{Field: "limit", Message: "Limit must be an integer"}))
			return
		}

		limit = n
	}

	totals, err := h.svc.MonthlyTotals(r.Context(), limit)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toMonthlyResponse(totals))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	var (
		q      = r.URL.Query()
		fields apperr.Fields
	)

	window := report.Window{
		Start: render.QueryDate(q, "start_date", &fields),
		End:   render.QueryDate(q, "end_date", &fields),
	}

	if err := fields.Err(); err != nil {
		h.render.Error(w, r, err)
		return
	}

	totals, err := h.svc.CategoryTotals(r.Context(), window)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toCategoryResponse(totals))
}
