// Package rental provides CRUD operations for rentals.
package rental

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/db/models"
)

var (
	// ErrRentalNotFound is returned when a rental is not found.
	ErrRentalNotFound = fmt.Errorf("rental %w", auth.ErrNotFound)
	// ErrRentalNameEmpty is returned when creating or updating a rental without name.
	ErrRentalNameEmpty = errors.New("rental name cannot be empty")
	// ErrOwnerMissing is returned when creating a rental without owner.
	ErrOwnerMissing = errors.New("rental owner cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a rental by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Rental, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rental models.Rental
	result := db.First(&rental, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, result.Error
	}

	return &rental, nil
}

// GetAll retrieves all rentals ordered by ID.
func GetAll(db *gorm.DB) ([]models.Rental, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rentals []models.Rental
	result := db.Order("id").Find(&rentals)
	if result.Error != nil {
		return nil, result.Error
	}

	return rentals, nil
}

// Create inserts a new rental.
func Create(db *gorm.DB, rental *models.Rental) error {
	if db == nil {
		return ErrDBNil
	}
	if rental.Name == "" {
		return ErrRentalNameEmpty
	}
	if rental.OwnerID == 0 {
		return ErrOwnerMissing
	}

	return db.Omit(clause.Associations).Create(rental).Error
}

// Update saves the editable fields of an existing rental.
// Owner and picture are never changed by an update.
func Update(db *gorm.DB, rental *models.Rental) error {
	if db == nil {
		return ErrDBNil
	}
	if rental.Name == "" {
		return ErrRentalNameEmpty
	}

	existing, err := GetByID(db, rental.ID)
	if err != nil {
		return err
	}

	return db.Model(existing).Updates(map[string]interface{}{
		"name":        rental.Name,
		"surface":     rental.Surface,
		"price":       rental.Price,
		"description": rental.Description,
	}).Error
}

// Delete deletes a rental by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Rental{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRentalNotFound
	}

	return nil
}

// Loader returns a loader for the ownership guard.
func Loader(db *gorm.DB) func(ctx context.Context, id uint64) (*models.Rental, error) {
	return func(ctx context.Context, id uint64) (*models.Rental, error) {
		return GetByID(db.WithContext(ctx), id)
	}
}

// OwnerOf returns the owner of rental.
func OwnerOf(rental *models.Rental) uint64 {
	return rental.OwnerID
}
