package domain

import (
	"context"
	"time"
)

// User represents a registered author. Users are immutable after
// registration; there are no update or delete operations.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the caller identity derived from a verified bearer token.
// Possession of a valid token is proof of identity for the encoded user.
type Identity struct {
	UserID string
	Email  string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
