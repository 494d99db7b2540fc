package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"centavo/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]*account.Account, error) {
	query := `
		SELECT id, plaid_id, name, user_id
		FROM accounts
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		var a account.Account
		if err := rows.Scan(&a.ID, &a.PlaidID, &a.Name, &a.UserID); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}

func (s *Store) GetAccount(ctx context.Context, userID, id string) (*account.Account, error) {
	query := `
		SELECT id, plaid_id, name, user_id
		FROM accounts
		WHERE id = $1 AND user_id = $2
	`

	var a account.Account

	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&a.ID, &a.PlaidID, &a.Name, &a.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	a.ID = uuid.NewString()

	query := `
		INSERT INTO accounts (id, plaid_id, name, user_id)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.db.ExecContext(ctx, query, a.ID, a.PlaidID, a.Name, a.UserID); err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

// UpdateAccount re-verifies ownership in the same statement; an update of a
// row owned by someone else behaves exactly like a missing row.
func (s *Store) UpdateAccount(ctx context.Context, userID, id, name string) (*account.Account, error) {
	query := `
		UPDATE accounts
		SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, plaid_id, name, user_id
	`

	var a account.Account

	err := s.db.QueryRowContext(ctx, query, name, id, userID).Scan(&a.ID, &a.PlaidID, &a.Name, &a.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("updating account: %w", err)
	}

	return &a, nil
}

func (s *Store) DeleteAccount(ctx context.Context, userID, id string) (string, error) {
	query := `
		DELETE FROM accounts
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`

	var deletedID string

	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&deletedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", account.ErrNotFound
		}

		return "", fmt.Errorf("deleting account: %w", err)
	}

	return deletedID, nil
}

func (s *Store) BulkDeleteAccounts(ctx context.Context, userID string, ids []string) ([]string, error) {
	query := `
		DELETE FROM accounts
		WHERE user_id = $1 AND id = ANY($2)
		RETURNING id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("bulk deleting accounts: %w", err)
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
