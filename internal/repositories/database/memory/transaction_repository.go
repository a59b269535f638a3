package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
)

type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]domain.TransactionPrimitives
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{transactions: make(map[string]domain.TransactionPrimitives)}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) Save(_ context.Context, transaction *domain.Transaction) error {
	p := transaction.ToPrimitives()
	r.mu.Lock()
	r.transactions[p.ID] = p
	r.mu.Unlock()
	return nil
}

func (r *TransactionRepository) Search(_ context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	p, ok := r.transactions[transactionID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return domain.TransactionFromPrimitives(p)
}

func (r *TransactionRepository) SearchByAccountID(_ context.Context, accountID string) ([]*domain.Transaction, error) {
	return r.filter(func(p domain.TransactionPrimitives) bool { return p.AccountID == accountID })
}

func (r *TransactionRepository) SearchByUserID(_ context.Context, userID string) ([]*domain.Transaction, error) {
	return r.filter(func(p domain.TransactionPrimitives) bool { return p.UserID == userID })
}

func (r *TransactionRepository) Delete(_ context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transactionID]; !ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	delete(r.transactions, transactionID)
	return nil
}

func (r *TransactionRepository) filter(keep func(domain.TransactionPrimitives) bool) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txs []*domain.Transaction
	for _, p := range r.transactions {
		if !keep(p) {
			continue
		}
		tx, err := domain.TransactionFromPrimitives(p)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	// Most recent date first, newest insert breaking ties.
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date().Equal(txs[j].Date()) {
			return txs[i].Date().After(txs[j].Date())
		}
		return txs[i].CreatedAt().After(txs[j].CreatedAt())
	})
	return txs, nil
}
