package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caszofficial/Expense-Control/internal/category"
	"github.com/caszofficial/Expense-Control/internal/http/render"
)

type Handler struct {
	svc    *category.Service
	render *render.Renderer
}

func NewHandler(svc *category.Service, rd *render.Renderer) *Handler {
	return &Handler{svc: svc, render: rd}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (req categoryRequest) params() category.Params {
	return category.Params{Name: req.Name, Color: req.Color}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toResponseList(categories))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.PathID(r, "id")
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toResponse(c))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := render.Decode(w, r, &req); err != nil {
		h.render.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusCreated, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.PathID(r, "id")
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	var req categoryRequest
	if err := render.Decode(w, r, &req); err != nil {
		h.render.Error(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusOK, toResponse(c))
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

	h.render.JSON(w, r, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}
