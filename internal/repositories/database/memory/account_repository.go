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

// AccountRepository keeps account snapshots in memory. Callers never share
// an instance with the store.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.AccountPrimitives
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.AccountPrimitives)}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) Save(_ context.Context, account *domain.Account) error {
	p := account.ToPrimitives()

	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.accounts[p.ID]; ok && stored.Version != p.Version {
		return fmt.Errorf("%w: account %s changed since version %d", apperrors.ErrConflict, p.ID, p.Version)
	}
	p.Version++
	r.accounts[p.ID] = p
	account.IncrementVersion()
	return nil
}

func (r *AccountRepository) Search(_ context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	p, ok := r.accounts[accountID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return domain.AccountFromPrimitives(p)
}

func (r *AccountRepository) SearchByUserID(_ context.Context, userID string) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var accounts []*domain.Account
	for _, p := range r.accounts {
		if p.UserID != userID {
			continue
		}
		a, err := domain.AccountFromPrimitives(p)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt().Before(accounts[j].CreatedAt())
	})
	return accounts, nil
}

func (r *AccountRepository) Delete(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[accountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	delete(r.accounts, accountID)
	return nil
}
