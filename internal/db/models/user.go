// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/chatop/chatop-api/internal/auth"
)

// User represents a user account.
// Passwords are stored hashed, see auth.PasswordHasher.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name.
	Name string `gorm:"size:64;not null"`
	// Email is the unique login of the user.
	Email string `gorm:"uniqueIndex;size:248;not null"`
	// Password is the bcrypt or argon2id hash.
	Password string `gorm:"size:255;not null"`
	// Role drives the permissions of the user.
	Role auth.Role `gorm:"type:varchar(20);not null;default:'USER'"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
