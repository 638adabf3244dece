package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/config"
	"github.com/chatop/chatop-api/internal/db/controller/user"
	"github.com/chatop/chatop-api/internal/db/models"
)

// defaultAccounts are created on an empty user table.
var defaultAccounts = []models.User{ //nolint:gochecknoglobals
	{Name: "Admin", Email: "admin@mail.com", Role: auth.RoleAdmin},
	{Name: "Manager", Email: "manager@mail.com", Role: auth.RoleManager},
	{Name: "User", Email: "user@mail.com", Role: auth.RoleUser},
}

func seed(cfg *config.Config, db *gorm.DB, hasher auth.PasswordHasher) error {
	// Seed initial data if user table is empty
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count users")
	}

	if count > 0 {
		return nil
	}

	if cfg.Seed.DefaultPassword == "" {
		return errors.New("seed.defaultpassword can not be empty")
	}

	hash, err := hasher.Encode(cfg.Seed.DefaultPassword)
	if err != nil {
		return err
	}

	for _, account := range defaultAccounts {
		account.Password = hash
		if err = user.Create(db, &account); err != nil {
			return errors.Wrapf(err, "failed to seed %s", account.Email)
		}

		log.Warn().Str("email", account.Email).Str("role", string(account.Role)).
			Msg("created default account, change its password")
	}

	return nil
}
