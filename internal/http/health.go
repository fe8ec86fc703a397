package http

import (
	"net/http"
	"time"

	"github.com/caszofficial/Expense-Control/internal/http/render"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func health(rd *render.Renderer, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.JSON(w, r, http.StatusOK, healthResponse{Status: "ok", Timestamp: now().UTC()})
	}
}
