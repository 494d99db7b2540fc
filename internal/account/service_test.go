package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"centavo/internal/account"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *account.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.NewString()
						return nil
					})
			},
		},
		{
			name: "RepoError",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := account.NewService(repo)
			got, err := svc.Create(context.Background(), "user_1", "Checking")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "user_1", got.UserID)
			assert.Equal(t, "Checking", got.Name)
		})
	}
}

func TestService_List_ScopedToOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		ListAccounts(gomock.Any(), "user_1").
		Return([]*account.Account{{ID: "a1", Name: "Checking", UserID: "user_1"}}, nil)

	svc := account.NewService(repo)

	got, err := svc.List(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Checking", got[0].Name)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		GetAccount(gomock.Any(), "user_2", "a1").
		Return(nil, account.ErrNotFound)

	svc := account.NewService(repo)

	_, err := svc.Get(context.Background(), "user_2", "a1")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestService_BulkDelete_ReturnsOwnedSubset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		BulkDeleteAccounts(gomock.Any(), "user_1", []string{"a1", "a2", "theirs"}).
		Return([]string{"a1", "a2"}, nil)

	svc := account.NewService(repo)

	deleted, err := svc.BulkDelete(context.Background(), "user_1", []string{"a1", "a2", "theirs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, deleted)
}

func TestService_Update_NotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateAccount(gomock.Any(), "user_2", "a1", "Renamed").
		Return(nil, account.ErrNotFound)

	svc := account.NewService(repo)

	_, err := svc.Update(context.Background(), "user_2", "a1", "Renamed")
	assert.ErrorIs(t, err, account.ErrNotFound)
}
