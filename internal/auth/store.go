package auth

import (
	"context"
	"time"
)

// User is the credential record seen by the auth layer.
type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the request identity for u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// CredentialStore looks up and saves users.
// Lookups of missing users return an error wrapping ErrNotFound.
type CredentialStore interface {
	FindByID(ctx context.Context, id uint64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
}
