package services

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount lists the transactions of an account owned by userID.
	ListTransactionsByAccount(ctx context.Context, userID string, accountID string) ([]*domain.Transaction, error)

	// ListTransactions lists every transaction of userID.
	ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// TransactionWriterSvc defines the transaction lifecycle. Each operation
// persists the aggregate and publishes the events it recorded; the account
// balance follows through the balance subscribers.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
