package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/db/models"
)

// Store is the gorm backed auth.CredentialStore.
type Store struct {
	db *gorm.DB
}

var _ auth.CredentialStore = (*Store)(nil)

// NewStore creates a Store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByID implements auth.CredentialStore.
func (s *Store) FindByID(ctx context.Context, id uint64) (*auth.User, error) {
	user, err := GetByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	return toAuthUser(user), nil
}

// FindByEmail implements auth.CredentialStore.
func (s *Store) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, err := GetByEmail(s.db.WithContext(ctx), email)
	if err != nil {
		return nil, err
	}

	return toAuthUser(user), nil
}

// Save implements auth.CredentialStore. Users with ID 0 are created, others updated.
func (s *Store) Save(ctx context.Context, u *auth.User) (*auth.User, error) {
	db := s.db.WithContext(ctx)
	record := fromAuthUser(u)

	if record.ID == 0 {
		if err := Create(db, record); err != nil {
			return nil, err
		}

		return toAuthUser(record), nil
	}

	if _, err := GetByID(db, record.ID); err != nil {
		return nil, err
	}

	if err := db.Save(record).Error; err != nil {
		return nil, err
	}

	return toAuthUser(record), nil
}

func toAuthUser(u *models.User) *auth.User {
	return &auth.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromAuthUser(u *auth.User) *models.User {
	return &models.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
