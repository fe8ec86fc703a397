package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caszofficial/Expense-Control/internal/expense"
	"github.com/caszofficial/Expense-Control/internal/export"
	"github.com/caszofficial/Expense-Control/internal/http/render"
	"github.com/caszofficial/Expense-Control/internal/importer"
)

type Handler struct {
	svc       *expense.Service
	importSvc *importer.Service
	exportSvc *export.Service
	render    *render.Renderer
}

func NewHandler(svc *expense.Service, importSvc *importer.Service, exportSvc *export.Service, rd *render.Renderer) *Handler {
	return &Handler{
		svc:       svc,
		importSvc: importSvc,
		exportSvc: exportSvc,
		render:    rd,
	}
}

// Routes registers the JSON endpoints. Import and export are registered
// separately by TransferRoutes because they do not speak JSON on both sides.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) TransferRoutes(r chi.Router) {
	r.Post("/import", h.importCSV)
	r.Get("/export", h.exportCSV)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	expenses, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toResponseList(expenses))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.PathID(r, "id")
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toResponse(e))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := render.Decode(w, r, &req); err != nil {
		h.render.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	e, err := h.svc.Create(r.Context(), params)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusCreated, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.PathID(r, "id")
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	var req updateExpenseRequest
	if err := render.Decode(w, r, &req); err != nil {
		h.render.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.PathID(r, "id")
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, messageResponse{Message: "Expense deleted successfully"})
}
