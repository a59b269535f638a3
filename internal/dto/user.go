package dto

import (
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a user.
type RegisterUserRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Email string `json:"email" binding:"required,email"`
}

type UserResponse struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
