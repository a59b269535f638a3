package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
)

// User represents an owner of accounts, transactions and categories.
type User struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUser(id, name, email string) (*User, error) {
	if err := validateID("user id", id); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewInvalidArgument("user name must not be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, apperrors.NewInvalidArgument("invalid email %q", email)
	}
	return &User{UserID: id, Name: name, Email: strings.ToLower(addr.Address), CreatedAt: time.Now().UTC()}, nil
}
