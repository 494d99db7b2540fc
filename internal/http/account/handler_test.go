package account_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"centavo/internal/account"
	"centavo/internal/auth"
	accountHandler "centavo/internal/http/account"
)

func newRouter(svc *account.Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/accounts", accountHandler.NewHandler(svc).Routes)

	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithUserID(context.Background(), "user_1"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		ListAccounts(gomock.Any(), "user_1").
		Return([]*account.Account{
			{ID: "a1", Name: "Checking", UserID: "user_1"},
			{ID: "a2", Name: "Savings", UserID: "user_1"},
		}, nil)

	rec := doRequest(t, newRouter(account.NewService(repo)), http.MethodGet, "/accounts", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":"a1","name":"Checking"},{"id":"a2","name":"Savings"}]}`, rec.Body.String())
}

func TestHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateAccount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *account.Account) error {
				a.ID = "a1"
				return nil
			})

		rec := doRequest(t, newRouter(account.NewService(repo)), http.MethodPost, "/accounts", `{"name":"Checking"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":{"id":"a1","name":"Checking"}}`, rec.Body.String())
	})

	t.Run("MissingName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := doRequest(t, newRouter(account.NewService(account.NewMockRepository(ctrl))), http.MethodPost, "/accounts", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"validation failed","fields":{"name":"is required"}}`, rec.Body.String())
	})

	t.Run("InvalidBody", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := doRequest(t, newRouter(account.NewService(account.NewMockRepository(ctrl))), http.MethodPost, "/accounts", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		GetAccount(gomock.Any(), "user_1", "a1").
		Return(nil, account.ErrNotFound)

	rec := doRequest(t, newRouter(account.NewService(repo)), http.MethodGet, "/accounts/a1", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteAccount(gomock.Any(), "user_1", "a1").
		Return("a1", nil)

	rec := doRequest(t, newRouter(account.NewService(repo)), http.MethodDelete, "/accounts/a1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"a1"}}`, rec.Body.String())
}

func TestHandler_BulkDelete(t *testing.T) {
	t.Run("ReturnsDeletedSubset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		repo.EXPECT().
			BulkDeleteAccounts(gomock.Any(), "user_1", []string{"a1", "foreign"}).
			Return([]string{"a1"}, nil)

		rec := doRequest(t, newRouter(account.NewService(repo)), http.MethodPost, "/accounts/bulk-delete", `{"ids":["a1","foreign"]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"id":"a1"}]}`, rec.Body.String())
	})

	t.Run("MissingIDs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := doRequest(t, newRouter(account.NewService(account.NewMockRepository(ctrl))), http.MethodPost, "/accounts/bulk-delete", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
