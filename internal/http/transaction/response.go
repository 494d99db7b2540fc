package transaction

import (
	"time"

	"centavo/internal/transaction"
)

type transactionResponse struct {
	ID         string    `json:"id"`
	Amount     int64     `json:"amount"`
	Payee      string    `json:"payee"`
	Notes      *string   `json:"notes"`
	Date       time.Time `json:"date"`
	AccountID  string    `json:"accountId"`
	Account    string    `json:"account,omitempty"`
	CategoryID *string   `json:"categoryId"`
	Category   *string   `json:"category"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		Amount:     tx.Amount,
		Payee:      tx.Payee,
		Notes:      tx.Notes,
		Date:       tx.Date,
		AccountID:  tx.AccountID,
		Account:    tx.AccountName,
		CategoryID: tx.CategoryID,
		Category:   tx.CategoryName,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
