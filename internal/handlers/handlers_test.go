package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/bacaxnot/finance-sub000/internal/handlers"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	"github.com/bacaxnot/finance-sub000/internal/platform/config"
	"github.com/bacaxnot/finance-sub000/internal/repositories/database/memory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		JWTSecret:         "handlers-test-secret",
		JWTIssuer:         "handlers-test",
		JWTExpiryDuration: time.Hour,
	}
	container := services.NewServiceContainer(cfg, logger, memory.NewRepositoryProvider())

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	handlers.RegisterRoutes(s.router, cfg, container, handlers.RouteOptions{})

	s.token = s.register("Ana", "ana@example.com")
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) register(name, email string) string {
	w := s.do(http.MethodPost, "/auth/register", "", gin.H{"name": name, "email": email})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.RegisterResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (s *HandlersTestSuite) createAccount(token, currency string, balance int64) dto.AccountResponse {
	w := s.do(http.MethodPost, "/api/v1/accounts", token, gin.H{
		"name":           "Wallet",
		"currency":       currency,
		"initialBalance": balance,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var acc dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &acc))
	return acc
}

func (s *HandlersTestSuite) balance(accountID string) decimal.Decimal {
	w := s.do(http.MethodGet, "/api/v1/accounts/"+accountID, s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var acc dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &acc))
	return acc.CurrentBalance
}

func (s *HandlersTestSuite) assertBalance(accountID string, want int64) {
	got := s.balance(accountID)
	s.True(got.Equal(decimal.NewFromInt(want)), "balance: want %d, got %s", want, got.String())
}

func yesterday() string {
	return time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestRequiresAuth() {
	w := s.do(http.MethodGet, "/api/v1/accounts", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestDuplicateRegistration() {
	w := s.do(http.MethodPost, "/auth/register", "", gin.H{"name": "Ana", "email": "ana@example.com"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestGetMe() {
	w := s.do(http.MethodGet, "/api/v1/users/me", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var user dto.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	s.Equal("ana@example.com", user.Email)
}

func (s *HandlersTestSuite) TestTransactionLifecycle() {
	acc := s.createAccount(s.token, "COP", 1000)

	w := s.do(http.MethodPost, "/api/v1/transactions", s.token, gin.H{
		"accountId":   acc.AccountID,
		"amount":      200,
		"currency":    "COP",
		"direction":   "outbound",
		"description": "Groceries",
		"date":        yesterday(),
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var tx dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tx))
	s.assertBalance(acc.AccountID, 800)

	w = s.do(http.MethodPatch, "/api/v1/transactions/"+tx.TransactionID, s.token, gin.H{"amount": 350})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.assertBalance(acc.AccountID, 650)

	w = s.do(http.MethodPatch, "/api/v1/transactions/"+tx.TransactionID, s.token, gin.H{"direction": "inbound"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.assertBalance(acc.AccountID, 1350)

	w = s.do(http.MethodGet, "/api/v1/accounts/"+acc.AccountID+"/transactions", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list.Transactions, 1)
	s.Equal("inbound", list.Transactions[0].Direction)

	w = s.do(http.MethodDelete, "/api/v1/transactions/"+tx.TransactionID, s.token, nil)
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())
	s.assertBalance(acc.AccountID, 1000)

	w = s.do(http.MethodGet, "/api/v1/transactions/"+tx.TransactionID, s.token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestCurrencyMismatch() {
	acc := s.createAccount(s.token, "COP", 1000)

	w := s.do(http.MethodPost, "/api/v1/transactions", s.token, gin.H{
		"accountId":   acc.AccountID,
		"amount":      10,
		"currency":    "USD",
		"direction":   "outbound",
		"description": "Coffee",
		"date":        yesterday(),
	})
	s.Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	s.assertBalance(acc.AccountID, 1000)

	w = s.do(http.MethodGet, "/api/v1/transactions", s.token, nil)
	var list dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Empty(list.Transactions)
}

func (s *HandlersTestSuite) TestOverdraftIsRejected() {
	acc := s.createAccount(s.token, "COP", 100)

	w := s.do(http.MethodPost, "/api/v1/transactions", s.token, gin.H{
		"accountId":   acc.AccountID,
		"amount":      101,
		"currency":    "COP",
		"direction":   "outbound",
		"description": "Rent",
		"date":        yesterday(),
	})
	s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	s.assertBalance(acc.AccountID, 100)
}

func (s *HandlersTestSuite) TestBindingValidation() {
	acc := s.createAccount(s.token, "COP", 100)

	testCases := []struct {
		name string
		body gin.H
	}{
		{name: "bad direction", body: gin.H{"accountId": acc.AccountID, "amount": 1, "currency": "COP", "direction": "sideways", "description": "x", "date": yesterday()}},
		{name: "bad currency", body: gin.H{"accountId": acc.AccountID, "amount": 1, "currency": "pesos", "direction": "inbound", "description": "x", "date": yesterday()}},
		{name: "bad account id", body: gin.H{"accountId": "not-a-uuid", "amount": 1, "currency": "COP", "direction": "inbound", "description": "x", "date": yesterday()}},
		{name: "missing description", body: gin.H{"accountId": acc.AccountID, "amount": 1, "currency": "COP", "direction": "inbound", "date": yesterday()}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := s.do(http.MethodPost, "/api/v1/transactions", s.token, tc.body)
			s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func (s *HandlersTestSuite) TestForeignAccountIsForbidden() {
	acc := s.createAccount(s.token, "COP", 1000)
	other := s.register("Bob", "bob@example.com")

	w := s.do(http.MethodGet, "/api/v1/accounts/"+acc.AccountID, other, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/transactions", other, gin.H{
		"accountId":   acc.AccountID,
		"amount":      10,
		"currency":    "COP",
		"direction":   "outbound",
		"description": "Theft",
		"date":        yesterday(),
	})
	s.Equal(http.StatusForbidden, w.Code)
	s.assertBalance(acc.AccountID, 1000)
}

func (s *HandlersTestSuite) TestUnknownAccount() {
	w := s.do(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), s.token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestBalanceAdjustment() {
	acc := s.createAccount(s.token, "COP", 100)

	w := s.do(http.MethodPost, "/api/v1/accounts/"+acc.AccountID+"/balance-adjustments", s.token, gin.H{
		"operation": "add",
		"amount":    "25.50",
		"currency":  "COP",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(s.balance(acc.AccountID).Equal(decimal.RequireFromString("125.50")))

	w = s.do(http.MethodPost, "/api/v1/accounts/"+acc.AccountID+"/balance-adjustments", s.token, gin.H{
		"operation": "subtract",
		"amount":    500,
		"currency":  "COP",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestAccountRenameAndDelete() {
	acc := s.createAccount(s.token, "COP", 100)

	w := s.do(http.MethodPatch, "/api/v1/accounts/"+acc.AccountID, s.token, gin.H{"name": "Savings"})
	s.Require().Equal(http.StatusOK, w.Code)
	var renamed dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &renamed))
	s.Equal("Savings", renamed.Name)

	w = s.do(http.MethodDelete, "/api/v1/accounts/"+acc.AccountID, s.token, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/v1/accounts", s.token, nil)
	var list dto.ListAccountsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Empty(list.Accounts)
}

func (s *HandlersTestSuite) TestCategories() {
	w := s.do(http.MethodPost, "/api/v1/categories", s.token, gin.H{"name": "Food"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var cat dto.CategoryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cat))

	w = s.do(http.MethodPost, "/api/v1/categories", s.token, gin.H{"name": "Food"})
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/v1/categories/"+cat.CategoryID, s.token, nil)
	s.Equal(http.StatusOK, w.Code)

	acc := s.createAccount(s.token, "COP", 100)
	w = s.do(http.MethodPost, "/api/v1/transactions", s.token, gin.H{
		"accountId":   acc.AccountID,
		"categoryId":  cat.CategoryID,
		"amount":      10,
		"currency":    "COP",
		"direction":   "outbound",
		"description": "Lunch",
		"date":        yesterday(),
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var tx dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tx))
	s.Require().NotNil(tx.CategoryID)
	s.Equal(cat.CategoryID, *tx.CategoryID)
}
