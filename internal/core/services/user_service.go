package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/bacaxnot/finance-sub000/internal/platform/config"
	"github.com/bacaxnot/finance-sub000/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.Search(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, entityUser, userID)
	}
	return user, nil
}

// tokenService issues JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiryTime, nil
}
