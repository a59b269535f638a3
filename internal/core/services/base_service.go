package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
)

// Entity names used in error messages.
const (
	entityAccount     = "account"
	entityTransaction = "transaction"
	entityCategory    = "category"
	entityUser        = "user"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// notFoundAs turns a repository ErrNotFound into an EntityDoesNotExistError.
// Any other error is returned unchanged.
func notFoundAs(err error, entity, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewEntityDoesNotExist(entity, id)
	}
	return err
}

// findOwnedAccount loads an account and checks it belongs to userID.
func (s *BaseService) findOwnedAccount(ctx context.Context, repo portsrepo.AccountReader, userID, accountID string) (*domain.Account, error) {
	account, err := repo.Search(ctx, accountID)
	if err != nil {
		err = notFoundAs(err, entityAccount, accountID)
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if !account.BelongsTo(userID) {
		s.GetLogger(ctx).Warn("Account access denied",
			slog.String("account_id", accountID),
			slog.String("user_id", userID))
		return nil, apperrors.NewAuthorization(entityAccount, accountID, userID)
	}
	return account, nil
}

// findOwnedCategory loads a category and checks it belongs to userID.
func (s *BaseService) findOwnedCategory(ctx context.Context, repo portsrepo.CategoryReader, userID, categoryID string) (*domain.Category, error) {
	category, err := repo.Search(ctx, categoryID)
	if err != nil {
		err = notFoundAs(err, entityCategory, categoryID)
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if !category.BelongsTo(userID) {
		return nil, apperrors.NewAuthorization(entityCategory, categoryID, userID)
	}
	return category, nil
}
