package category

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context, userID string) ([]*Category, error)
	GetCategory(ctx context.Context, userID, id string) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, userID, id, name string) (*Category, error)
	DeleteCategory(ctx context.Context, userID, id string) (string, error)
	BulkDeleteCategories(ctx context.Context, userID string, ids []string) ([]string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]*Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Category, error) {
	return s.repo.GetCategory(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID, name string) (*Category, error) {
	c := &Category{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, id, name string) (*Category, error) {
	return s.repo.UpdateCategory(ctx, userID, id, name)
}

func (s *Service) Delete(ctx context.Context, userID, id string) (string, error) {
	return s.repo.DeleteCategory(ctx, userID, id)
}

func (s *Service) BulkDelete(ctx context.Context, userID string, ids []string) ([]string, error) {
	return s.repo.BulkDeleteCategories(ctx, userID, ids)
}
