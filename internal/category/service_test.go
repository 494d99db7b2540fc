package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"centavo/internal/category"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *category.Category) error {
			c.ID = uuid.NewString()
			return nil
		})

	svc := category.NewService(repo)

	got, err := svc.Create(context.Background(), "user_1", "Groceries")
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "user_1", got.UserID)
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *category.MockRepository)
		wantID    string
		wantErr   error
	}{
		{
			name: "Success",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					DeleteCategory(gomock.Any(), "user_1", "c1").
					Return("c1", nil)
			},
			wantID: "c1",
		},
		{
			name: "NotOwned",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					DeleteCategory(gomock.Any(), "user_1", "c1").
					Return("", category.ErrNotFound)
			},
			wantErr: category.ErrNotFound,
		},
		{
			name: "RepoError",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					DeleteCategory(gomock.Any(), "user_1", "c1").
					Return("", errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := category.NewService(repo)

			id, err := svc.Delete(context.Background(), "user_1", "c1")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestService_BulkDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		BulkDeleteCategories(gomock.Any(), "user_1", []string{"c1", "nope"}).
		Return([]string{"c1"}, nil)

	svc := category.NewService(repo)

	deleted, err := svc.BulkDelete(context.Background(), "user_1", []string{"c1", "nope"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, deleted)
}
