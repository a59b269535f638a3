package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) Save(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserID == user.UserID || u.Email == user.Email {
			return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.Email)
		}
	}
	r.users[user.UserID] = user
	return nil
}

func (r *UserRepository) Search(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	u, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return &u, nil
}
