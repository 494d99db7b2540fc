package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"centavo/internal/auth"
	"centavo/internal/http/respond"
	"centavo/internal/importer"
	"centavo/internal/transaction"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type rowDTO struct {
	Amount int64     `json:"amount"`
	Payee  string    `json:"payee"`
	Notes  *string   `json:"notes,omitempty"`
	Date   time.Time `json:"date"`
}

type importedDTO struct {
	ID     string    `json:"id"`
	Amount int64     `json:"amount"`
	Payee  string    `json:"payee"`
	Notes  *string   `json:"notes,omitempty"`
	Date   time.Time `json:"date"`
}

type importSuccessResponse struct {
	Imported     int           `json:"imported"`
	Transactions []importedDTO `json:"transactions"`
}

type conflictDTO struct {
	Incoming rowDTO      `json:"incoming"`
	Existing importedDTO `json:"existing"`
}

type importConflictResponse struct {
	New       []rowDTO      `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	accountID := r.FormValue("account_id")
	if accountID == "" {
		respond.Error(w, http.StatusBadRequest, "account_id field is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	params, err := h.importSvc.Parse(file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	for i := range params {
		params[i].AccountID = accountID
	}

	result, err := h.txSvc.ImportBatch(r.Context(), auth.UserID(r.Context()), accountID, params)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("importing transactions", "error", err)
		respond.Internal(w)

		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]rowDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toRowDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toRowDTO(c.Incoming),
				Existing: toImportedDTO(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.Data(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

type confirmRequest struct {
	AccountID string   `json:"accountId" validate:"required"`
	Rows      []rowDTO `json:"rows" validate:"required"`
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !respond.Valid(w, req) {
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Rows))
	for _, row := range req.Rows {
		params = append(params, transaction.CreateParams{
			Amount:    row.Amount,
			Payee:     row.Payee,
			Notes:     row.Notes,
			Date:      row.Date,
			AccountID: req.AccountID,
		})
	}

	txs, err := h.txSvc.ConfirmBatch(r.Context(), auth.UserID(r.Context()), req.AccountID, params)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.NotFound(w)
			return
		}

		slog.Error("confirming import", "error", err)
		respond.Internal(w)

		return
	}

	respond.Data(w, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	dtos := make([]importedDTO, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, toImportedDTO(tx))
	}

	return importSuccessResponse{
		Imported:     len(dtos),
		Transactions: dtos,
	}
}

func toImportedDTO(tx *transaction.Transaction) importedDTO {
	return importedDTO{
		ID:     tx.ID,
		Amount: tx.Amount,
		Payee:  tx.Payee,
		Notes:  tx.Notes,
		Date:   tx.Date,
	}
}

func toRowDTO(p transaction.CreateParams) rowDTO {
	return rowDTO{
		Amount: p.Amount,
		Payee:  p.Payee,
		Notes:  p.Notes,
		Date:   p.Date,
	}
}
