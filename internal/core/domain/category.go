package domain

import (
	"strings"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
)

// Category groups a user's transactions. It takes no part in balance maintenance.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewCategory(id, userID, name string) (*Category, error) {
	if err := validateID("category id", id); err != nil {
		return nil, err
	}
	if err := validateID("user id", userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewInvalidArgument("category name must not be empty")
	}
	return &Category{ID: id, UserID: userID, Name: name, CreatedAt: time.Now().UTC()}, nil
}

func (c *Category) BelongsTo(userID string) bool {
	return c.UserID == userID
}
