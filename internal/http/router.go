package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/caszofficial/Expense-Control/internal/http/category"
	"github.com/caszofficial/Expense-Control/internal/http/expense"
	"github.com/caszofficial/Expense-Control/internal/http/render"
	"github.com/caszofficial/Expense-Control/internal/http/report"
	"github.com/caszofficial/Expense-Control/internal/logging"
)

type Options struct {
	Logger         *slog.Logger
	Renderer       *render.Renderer
	AllowedOrigins []string
	Now            func() time.Time // health timestamp; defaults to time.Now
}

func New(
	opts Options,
	categoriesV1 *category.Handler,
	expensesV1 *expense.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	router := chi.NewRouter()

	router.NotFound(opts.Renderer.NotFound)
	router.MethodNotAllowed(opts.Renderer.MethodNotAllowed)

	router.Use(logging.Middleware(opts.Logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", logging.RequestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/health", health(opts.Renderer, opts.Now))

	router.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Route("/stats", reportsV1.Routes)

			expensesV1.TransferRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})
		})
	})

	return router
}
