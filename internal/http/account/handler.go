package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"centavo/internal/account"
	"centavo/internal/auth"
	"centavo/internal/http/respond"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
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

type accountResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		slog.Error("listing accounts", "error", err)
		respond.Internal(w)

		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toResponse(a))
	}

	respond.Data(w, http.StatusOK, resp)
}

type upsertAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req upsertAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !respond.Valid(w, req) {
		return
	}

	a, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), req.Name)
	if err != nil {
		slog.Error("creating account", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	a, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("getting account", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, toResponse(a))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	var req upsertAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !respond.Valid(w, req) {
		return
	}

	a, err := h.svc.Update(r.Context(), auth.UserID(r.Context()), id, req.Name)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("updating account", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, toResponse(a))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	deletedID, err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("deleting account", "error", err)
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
		slog.Error("bulk deleting accounts", "error", err)
		respond.Internal(w)

		return
	}

	resp := make([]map[string]string, 0, len(deleted))
	for _, id := range deleted {
		resp = append(resp, map[string]string{"id": id})
	}

	respond.Data(w, http.StatusOK, resp)
}
