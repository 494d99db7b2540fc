package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"centavo/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]*category.Category, error) {
	query := `
		SELECT id, plaid_id, name, user_id
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.PlaidID, &c.Name, &c.UserID); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, userID, id string) (*category.Category, error) {
	query := `
		SELECT id, plaid_id, name, user_id
		FROM categories
		WHERE id = $1 AND user_id = $2
	`

	var c category.Category

	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&c.ID, &c.PlaidID, &c.Name, &c.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	c.ID = uuid.NewString()

	query := `
		INSERT INTO categories (id, plaid_id, name, user_id)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.db.ExecContext(ctx, query, c.ID, c.PlaidID, c.Name, c.UserID); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, userID, id, name string) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, plaid_id, name, user_id
	`

	var c category.Category

	err := s.db.QueryRowContext(ctx, query, name, id, userID).Scan(&c.ID, &c.PlaidID, &c.Name, &c.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("updating category: %w", err)
	}

	return &c, nil
}

// DeleteCategory relies on the ON DELETE SET NULL constraint: dependent
// transactions survive with a cleared category reference.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) (string, error) {
	query := `
		DELETE FROM categories
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`

	var deletedID string

	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&deletedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", category.ErrNotFound
		}

		return "", fmt.Errorf("deleting category: %w", err)
	}

	return deletedID, nil
}

func (s *Store) BulkDeleteCategories(ctx context.Context, userID string, ids []string) ([]string, error) {
	query := `
		DELETE FROM categories
		WHERE user_id = $1 AND id = ANY($2)
		RETURNING id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("bulk deleting categories: %w", err)
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
