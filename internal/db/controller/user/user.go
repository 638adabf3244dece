// Package user provides CRUD operations for user accounts.
package user

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/db/models"
)

const emailQueryPattern = "email = ?"

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = fmt.Errorf("user %w", auth.ErrNotFound)
	// ErrEmailEmpty is returned when looking up or creating a user without email.
	ErrEmailEmpty = errors.New("user email cannot be empty")
	// ErrNameEmpty is returned when setting an empty user name.
	ErrNameEmpty = errors.New("user name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a user by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	result := db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetByEmail retrieves a user by email. Emails are compared lower case.
func GetByEmail(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailEmpty
	}

	var user models.User
	result := db.Where(emailQueryPattern, email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetAll retrieves all users ordered by ID.
func GetAll(db *gorm.DB) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	result := db.Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// Create inserts a new user. The email must not be taken yet.
func Create(db *gorm.DB, user *models.User) error {
	if db == nil {
		return ErrDBNil
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return ErrEmailEmpty
	}
	if user.Role == "" {
		user.Role = auth.RoleUser
	}

	// Check if email already exists
	var count int64
	if err := db.Model(&models.User{}).Where(emailQueryPattern, user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return auth.ErrEmailExists
	}

	return db.Omit(clause.Associations).Create(user).Error
}

// UpdateName changes the display name of a user.
func UpdateName(db *gorm.DB, id uint64, name string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameEmpty
	}

	user, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err = db.Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Delete deletes a user by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
