package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"centavo/internal/account"
	"centavo/internal/auth"
	"centavo/internal/category"
	centavoHttp "centavo/internal/http"
	accountHandler "centavo/internal/http/account"
	categoryHandler "centavo/internal/http/category"
	importHandler "centavo/internal/http/importcsv"
	txHandler "centavo/internal/http/transaction"
	"centavo/internal/importer"
	"centavo/internal/transaction"
)

const secret = "test-secret"

func newRouter(t *testing.T, ctrl *gomock.Controller) (http.Handler, *account.MockRepository) {
	t.Helper()

	accountRepo := account.NewMockRepository(ctrl)

	accountService := account.NewService(accountRepo)
	categoryService := category.NewService(category.NewMockRepository(ctrl))
	transactionService := transaction.NewService(transaction.NewMockRepository(ctrl))

	router := centavoHttp.New(
		secret,
		[]string{"*"},
		accountHandler.NewHandler(accountService),
		categoryHandler.NewHandler(categoryService),
		txHandler.NewHandler(transactionService),
		importHandler.NewHandler(importer.NewService(), transactionService),
	)

	return router, accountRepo
}

func TestRouter_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouter(t, ctrl)

	paths := []string{"/api/v1/accounts", "/api/v1/categories", "/api/v1/transactions"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestRouter_AuthenticatedRequestReachesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, accountRepo := newRouter(t, ctrl)

	accountRepo.EXPECT().
		ListAccounts(gomock.Any(), "user_1").
		Return(nil, nil)

	token, err := auth.GenerateToken(secret, "user_1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}
