package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"centavo/internal/auth"
	"centavo/internal/http/respond"
	"centavo/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
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

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, end, err := transaction.ResolveRange(time.Now(), q.Get("from"), q.Get("to"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := transaction.ListFilter{
		StartDate: start,
		EndDate:   end,
		AccountID: q.Get("accountId"),
	}

	txs, err := h.svc.List(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		slog.Error("listing transactions", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, toResponseList(txs))
}

type upsertTransactionRequest struct {
	Amount     int64   `json:"amount"`
	Payee      string  `json:"payee" validate:"required"`
	Notes      *string `json:"notes"`
	Date       string  `json:"date" validate:"required"`
	AccountID  string  `json:"accountId" validate:"required"`
	CategoryID *string `json:"categoryId"`
}

// dateLayouts accepted for the date field: a plain calendar date or a full
// timestamp.
var dateLayouts = []string{time.DateOnly, time.RFC3339}

func (req *upsertTransactionRequest) params(w http.ResponseWriter) (transaction.CreateParams, bool) {
	if !respond.Valid(w, *req) {
		return transaction.CreateParams{}, false
	}

	var (
		date time.Time
		err  error
	)

	for _, layout := range dateLayouts {
		date, err = time.Parse(layout, req.Date)
		if err == nil {
			break
		}
	}

	if err != nil {
		respond.ValidationFailed(w, map[string]string{"date": "must be a valid date"})
		return transaction.CreateParams{}, false
	}

	return transaction.CreateParams{
		Amount:     req.Amount,
		Payee:      req.Payee,
		Notes:      req.Notes,
		Date:       date,
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
	}, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req upsertTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, ok := req.params(w)
	if !ok {
		return
	}

	tx, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), params)
	if err != nil {
		// A foreign or unknown account/category reference reads as not found.
		if errors.Is(err, transaction.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("creating transaction", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	tx, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("getting transaction", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	var req upsertTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, ok := req.params(w)
	if !ok {
		return
	}

	tx, err := h.svc.Update(r.Context(), auth.UserID(r.Context()), id, params)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("updating transaction", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "missing id")
		return
	}

	deletedID, err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("deleting transaction", "error", err)
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
		slog.Error("bulk deleting transactions", "error", err)
		respond.Internal(w)

		return
	}

	resp := make([]map[string]string, 0, len(deleted))
	for _, id := range deleted {
		resp = append(resp, map[string]string{"id": id})
	}

	respond.Data(w, http.StatusOK, resp)
}
