package models

import "time"

// User represents a user of the application.
type User struct {
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// Category is the row stored in the categories table.
type Category struct {
	CategoryID string    `db:"category_id"`
	UserID     string    `db:"user_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
}
