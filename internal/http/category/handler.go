package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"centavo/internal/auth"
	"centavo/internal/category"
	"centavo/internal/http/respond"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/bulk-delete", h.bulkDelete)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		slog.Error("listing categories", "error", err)
		respond.Internal(w)

		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toResponse(c))
	}

	respond.Data(w, http.StatusOK, resp)
}

type upsertCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req upsertCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !respond.Valid(w, req) {
		return
	}

	c, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), req.Name)
	if err != nil {
		slog.Error("creating category", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	c, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("getting category", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	var req upsertCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !respond.Valid(w, req) {
		return
	}

	c, err := h.svc.Update(r.Context(), auth.UserID(r.Context()), id, req.Name)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("updating category", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	deletedID, err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("deleting category", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, map[string]string{"id": deletedID})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,dive,required"`
}

func (h *Handler) bulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !respond.Valid(w, req) {
		return
	}

	deleted, err := h.svc.BulkDelete(r.Context(), auth.UserID(r.Context()), req.IDs)
	if err != nil {
		slog.Error("bulk deleting categories", "error", err)
		respond.Internal(w)

		return
	}

	resp := make([]map[string]string, 0, len(deleted))
	for _, id := range deleted {
		resp = append(resp, map[string]string{"id": id})
	}

	respond.Data(w, http.StatusOK, resp)
}
