package account

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	ListAccounts(ctx context.Context, userID string) ([]*Account, error)
	GetAccount(ctx context.Context, userID, id string) (*Account, error)
	CreateAccount(ctx context.Context, a *Account) error
	UpdateAccount(ctx context.Context, userID, id, name string) (*Account, error)
	DeleteAccount(ctx context.Context, userID, id string) (string, error)
	BulkDeleteAccounts(ctx context.Context, userID string, ids []string) ([]string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Account, error) {
	return s.repo.GetAccount(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID, name string) (*Account, error) {
	a := &Account{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Update(ctx context.Context, userID, id, name string) (*Account, error) {
	return s.repo.UpdateAccount(ctx, userID, id, name)
}

// Delete removes the account; dependent transactions go with it.
func (s *Service) Delete(ctx context.Context, userID, id string) (string, error) {
	return s.repo.DeleteAccount(ctx, userID, id)
}

// BulkDelete removes the intersection of the given ids and the caller's
// accounts and returns the ids actually deleted. Ids the caller does not
// own are skipped, not reported.
func (s *Service) BulkDelete(ctx context.Context, userID string, ids []string) ([]string, error) {
	return s.repo.BulkDeleteAccounts(ctx, userID, ids)
}
