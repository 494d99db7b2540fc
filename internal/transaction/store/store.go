package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"centavo/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads an enriched transaction row.
// Expected column order: id, amount, payee, notes, date, account_id,
// account_name, category_id, category_name.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var notes, categoryID, categoryName sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Amount, &tx.Payee, &notes, &tx.Date,
		&tx.AccountID, &tx.AccountName, &categoryID, &categoryName,
	); err != nil {
		return nil, err
	}

	if notes.Valid {
		tx.Notes = &notes.String
	}

	if categoryID.Valid {
		tx.CategoryID = &categoryID.String
	}

	if categoryName.Valid {
		tx.CategoryName = &categoryName.String
	}

	return &tx, nil
}

// The inner join to accounts both resolves ownership and supplies the
// account name; the left join keeps uncategorized transactions in the
// result with a null category.
const selectTransactionColumns = `
	t.id, t.amount, t.payee, t.notes, t.date,
	t.account_id, a.name AS account_name, t.category_id, c.name AS category_name
`

const transactionJoins = `
	FROM transactions t
	INNER JOIN accounts a ON t.account_id = a.id
	LEFT JOIN categories c ON t.category_id = c.id
`

func (s *Store) ListTransactions(ctx context.Context, userID string, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		WHERE a.user_id = $1 AND t.date >= $2 AND t.date <= $3`

	args := []any{userID, filter.StartDate, filter.EndDate}

	if filter.AccountID != "" {
		query += " AND t.account_id = $4"

		args = append(args, filter.AccountID)
	}

	query += " ORDER BY t.date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		WHERE t.id = $1 AND a.user_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// CreateTransaction inserts only when the referenced account (and category,
// if set) belongs to the caller. A foreign account id behaves like a
// missing one.
func (s *Store) CreateTransaction(ctx context.Context, userID string, tx *transaction.Transaction) error {
	tx.ID = uuid.NewString()

	query := `
		INSERT INTO transactions (id, amount, payee, notes, date, account_id, category_id)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE EXISTS (
			SELECT 1 FROM accounts a WHERE a.id = $6 AND a.user_id = $8
		)
		AND ($7::text IS NULL OR EXISTS (
			SELECT 1 FROM categories c WHERE c.id = $7 AND c.user_id = $8
		))
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.ID, tx.Amount, tx.Payee, tx.Notes, tx.Date, tx.AccountID, tx.CategoryID, userID,
	).Scan(&tx.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// UpdateTransaction re-verifies ownership at update time through the
// account join; a row owned (transitively) by someone else is left
// untouched and reported as not found.
func (s *Store) UpdateTransaction(ctx context.Context, userID, id string, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		WITH target AS (
			SELECT t.id
			FROM transactions t
			INNER JOIN accounts a ON t.account_id = a.id
			WHERE t.id = $1 AND a.user_id = $2
		)
		UPDATE transactions
		SET amount = $3, payee = $4, notes = $5, date = $6, account_id = $7, category_id = $8
		WHERE id IN (SELECT id FROM target)
		AND EXISTS (
			SELECT 1 FROM accounts a WHERE a.id = $7 AND a.user_id = $2
		)
		AND ($8::text IS NULL OR EXISTS (
			SELECT 1 FROM categories c WHERE c.id = $8 AND c.user_id = $2
		))
		RETURNING id, amount, payee, notes, date, account_id, category_id
	`

	var tx transaction.Transaction

	var notes, categoryID sql.NullString

	err := s.db.QueryRowContext(ctx, query,
		id, userID, params.Amount, params.Payee, params.Notes, params.Date,
		params.AccountID, params.CategoryID,
	).Scan(&tx.ID, &tx.Amount, &tx.Payee, &notes, &tx.Date, &tx.AccountID, &categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	if notes.Valid {
		tx.Notes = &notes.String
	}

	if categoryID.Valid {
		tx.CategoryID = &categoryID.String
	}

	return &tx, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) (string, error) {
	query := `
		WITH target AS (
			SELECT t.id
			FROM transactions t
			INNER JOIN accounts a ON t.account_id = a.id
			WHERE t.id = $1 AND a.user_id = $2
		)
		DELETE FROM transactions
		WHERE id IN (SELECT id FROM target)
		RETURNING id
	`

	var deletedID string

	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&deletedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", transaction.ErrNotFound
		}

		return "", fmt.Errorf("deleting transaction: %w", err)
	}

	return deletedID, nil
}

// BulkDeleteTransactions deletes the intersection of the given ids and the
// caller's transactions in a single set-based statement, so ids the caller
// does not own are excluded without an error.
func (s *Store) BulkDeleteTransactions(ctx context.Context, userID string, ids []string) ([]string, error) {
	query := `
		WITH target AS (
			SELECT t.id
			FROM transactions t
			INNER JOIN accounts a ON t.account_id = a.id
			WHERE a.user_id = $1 AND t.id = ANY($2)
		)
		DELETE FROM transactions
		WHERE id IN (SELECT id FROM target)
		RETURNING id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("bulk deleting transactions: %w", err)
	}
	defer rows.Close()

	var deleted []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning deleted id: %w", err)
		}

		deleted = append(deleted, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deleted rows: %w", err)
	}

	return deleted, nil
}

func importLockKey(accountID string, minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(accountID))
	h.Write([]byte{0})
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, accountID string, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(accountID, minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, userID, accountID string, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date   string
		Amount int64
		Payee  string
	}

	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{
			Date:   p.Date.Format(time.DateOnly),
			Amount: p.Amount,
			Payee:  p.Payee,
		}] = struct{}{}
	}

	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		WHERE a.user_id = $1 AND t.account_id = $2 AND t.date >= $3 AND t.date <= $4
		ORDER BY t.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, userID, accountID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		k := lookupKey{
			Date:   tx.Date.Format(time.DateOnly),
			Amount: tx.Amount,
			Payee:  tx.Payee,
		}

		_, found := keySet[k]
		if !found {
			continue
		}

		duplicates = append(duplicates, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, userID string, txs []*transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, amount, payee, notes, date, account_id, category_id)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE EXISTS (
			SELECT 1 FROM accounts a WHERE a.id = $6 AND a.user_id = $8
		)
		RETURNING id
	`

	for _, tx := range txs {
		tx.ID = uuid.NewString()

		err := itx.tx.QueryRowContext(ctx, query,
			tx.ID, tx.Amount, tx.Payee, tx.Notes, tx.Date, tx.AccountID, tx.CategoryID, userID,
		).Scan(&tx.ID)
		if err != nil {
			if err == sql.ErrNoRows {
				return transaction.ErrNotFound
			}

			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}
