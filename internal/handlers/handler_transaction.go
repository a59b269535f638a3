package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, mutating ...gin.HandlerFunc) {
	h := &transactionHandler{transactionService: transactionService}

	txs := rg.Group("/transactions")
	{
		txs.GET("", h.listTransactions)
		txs.GET("/:id", h.getTransaction)
		txs.POST("", withMiddleware(mutating, h.createTransaction)...)
		txs.PATCH("/:id", withMiddleware(mutating, h.updateTransaction)...)
		txs.DELETE("/:id", withMiddleware(mutating, h.deleteTransaction)...)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an inbound or outbound transaction; the account balance follows
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input or balance would become negative"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Account or category not found"
// @Failure 422 {object} ErrorResponse "Currency mismatch"
// @Security BearerAuth
// @Router /api/v1/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created successfully", slog.String("transaction_id", tx.ID()))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns one transaction owned by the logged-in user
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /api/v1/transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tx, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists every transaction of the logged-in user, newest first
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /api/v1/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	txs, err := h.transactionService.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txs))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update; amount and direction changes adjust the account balance
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input or balance would become negative"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 422 {object} ErrorResponse "Currency mismatch"
// @Security BearerAuth
// @Router /api/v1/transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deletes a transaction and reverses its effect on the account balance
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Balance would become negative"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /api/v1/transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
