package transaction

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (*Transaction, error)
	CreateTransaction(ctx context.Context, userID string, tx *Transaction) error
	UpdateTransaction(ctx context.Context, userID, id string, params CreateParams) (*Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) (string, error)
	BulkDeleteTransactions(ctx context.Context, userID string, ids []string) ([]string, error)

	BeginImport(ctx context.Context, accountID string, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, userID, accountID string, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, userID string, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount     int64
	Payee      string
	Notes      *string
	Date       time.Time
	AccountID  string
	CategoryID *string
}

type ListFilter struct {
	StartDate time.Time
	EndDate   time.Time
	AccountID string // empty means all of the owner's accounts
}

// ResolveRange turns optional yyyy-MM-dd bounds into a concrete window.
// Absent bounds default to the 30 days ending today, both ends inclusive,
// with today taken from the supplied clock value.
func ResolveRange(now time.Time, from, to string) (time.Time, time.Time, error) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -30)

	if from != "" {
		parsed, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %w", from, err)
		}

		start = parsed
	}

	if to != "" {
		parsed, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %w", to, err)
		}

		end = parsed
	}

	return start, end, nil
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		Amount:     params.Amount,
		Payee:      params.Payee,
		Notes:      params.Notes,
		Date:       params.Date,
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
	}
	if err := s.repo.CreateTransaction(ctx, userID, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, params CreateParams) (*Transaction, error) {
	return s.repo.UpdateTransaction(ctx, userID, id, params)
}

func (s *Service) Delete(ctx context.Context, userID, id string) (string, error) {
	return s.repo.DeleteTransaction(ctx, userID, id)
}

// BulkDelete removes the owned intersection of the given ids and returns
// the ids actually deleted; ids resolving to another user's accounts are
// silently skipped.
func (s *Service) BulkDelete(ctx context.Context, userID string, ids []string) ([]string, error) {
	return s.repo.BulkDeleteTransactions(ctx, userID, ids)
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

// ImportBatch inserts a batch of statement rows into one account. Rows that
// already exist in the account (same date, payee, and amount) are reported
// as conflicts instead of being inserted; if any conflict is found nothing
// is written and the caller decides what to confirm.
func (s *Service) ImportBatch(ctx context.Context, userID, accountID string, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, accountID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, userID, accountID, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d.Date, d.Amount, d.Payee)] = d
	}

	var (
		newParams []CreateParams
		conflicts []Conflict
	)

	for _, p := range params {
		existing, found := lookup[keyOf(p.Date, p.Amount, p.Payee)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(newParams)
	if err := itx.CreateTransactions(ctx, userID, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// ConfirmBatch inserts a batch the caller has already reviewed, skipping
// duplicate detection.
func (s *Service) ConfirmBatch(ctx context.Context, userID, accountID string, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, accountID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(params)
	if err := itx.CreateTransactions(ctx, userID, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

type dupKey struct {
	Date   string
	Amount int64
	Payee  string
}

func keyOf(date time.Time, amount int64, payee string) dupKey {
	return dupKey{
		Date:   date.Format(time.DateOnly),
		Amount: amount,
		Payee:  payee,
	}
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			Amount:     p.Amount,
			Payee:      p.Payee,
			Notes:      p.Notes,
			Date:       p.Date,
			AccountID:  p.AccountID,
			CategoryID: p.CategoryID,
		}
	}

	return txs
}
