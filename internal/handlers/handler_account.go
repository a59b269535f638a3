package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	balanceService     portssvc.AccountBalanceAdjusterSvc
	transactionService portssvc.TransactionReaderSvc
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(
	rg *gin.RouterGroup,
	accountService portssvc.AccountSvcFacade,
	balanceService portssvc.AccountBalanceAdjusterSvc,
	transactionService portssvc.TransactionReaderSvc,
	mutating ...gin.HandlerFunc,
) {
	h := &accountHandler{
		accountService:     accountService,
		balanceService:     balanceService,
		transactionService: transactionService,
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/transactions", h.listAccountTransactions)
		accounts.POST("", withMiddleware(mutating, h.createAccount)...)
		accounts.PATCH("/:id", withMiddleware(mutating, h.updateAccount)...)
		accounts.DELETE("/:id", withMiddleware(mutating, h.deleteAccount)...)
		accounts.POST("/:id/balance-adjustments", withMiddleware(mutating, h.adjustBalance)...)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Opens an account for the logged-in user. The current balance starts at the initial balance.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /api/v1/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created successfully", slog.String("account_id", account.ID()))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Returns one account owned by the logged-in user
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /api/v1/accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the accounts of the logged-in user
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /api/v1/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Rename an account
// @Description Updates the account name. Balances change only through transactions and balance adjustments.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Security BearerAuth
// @Router /api/v1/accounts/{id} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account owned by the logged-in user. Its transactions are kept.
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /api/v1/accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// adjustBalance godoc
// @Summary Adjust an account balance
// @Description Adds to or subtracts from the current balance without recording a transaction
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   adjustment body dto.AdjustBalanceRequest true "Adjustment"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input or balance would become negative"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Currency mismatch"
// @Security BearerAuth
// @Router /api/v1/accounts/{id}/balance-adjustments [post]
func (h *accountHandler) adjustBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AdjustBalanceRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.balanceService.AdjustAccountBalance(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to adjust account balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccountTransactions godoc
// @Summary List account transactions
// @Description Lists the transactions of one account, newest first
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /api/v1/accounts/{id}/transactions [get]
func (h *accountHandler) listAccountTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	txs, err := h.transactionService.ListTransactionsByAccount(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list account transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txs))
}
