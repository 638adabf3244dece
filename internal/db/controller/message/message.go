// Package message provides CRUD operations for messages.
package message

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/db/models"
)

var (
	// ErrMessageNotFound is returned when a message is not found.
	ErrMessageNotFound = fmt.Errorf("message %w", auth.ErrNotFound)
	// ErrMessageEmpty is returned when creating a message without text.
	ErrMessageEmpty = errors.New("message text cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a message by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var message models.Message
	result := db.First(&message, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, result.Error
	}

	return &message, nil
}

// GetAll retrieves all messages ordered by ID.
func GetAll(db *gorm.DB) ([]models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var messages []models.Message
	result := db.Order("id").Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}

// Create inserts a new message.
func Create(db *gorm.DB, message *models.Message) error {
	if db == nil {
		return ErrDBNil
	}
	if message.Message == "" {
		return ErrMessageEmpty
	}

	return db.Omit(clause.Associations).Create(message).Error
}

// Delete deletes a message by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Message{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
