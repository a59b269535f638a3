package services

import (
	"context"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
