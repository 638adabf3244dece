// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/db/models"
	gormadapter "github.com/chatop/chatop-api/internal/logger/adapter/gorm"
)

// New returns an in-memory SQLite database with all models migrated and foreign keys enforced.
// The pool is limited to one connection so every query sees the same database.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormadapter.New(zerolog.Nop(), gormadapter.Config{LogLevel: "silent"}),
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(models.All()...)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// CreateUser inserts a user and fails the test on error.
func CreateUser(t testing.TB, db *gorm.DB, user models.User) models.User {
	t.Helper()

	if user.Password == "" {
		user.Password = "x"
	}

	require.NoError(t, db.Create(&user).Error, "failed to seed user")

	return user
}

// CreateRental inserts a rental and fails the test on error.
func CreateRental(t testing.TB, db *gorm.DB, rental models.Rental) models.Rental {
	t.Helper()

	require.NoError(t, db.Omit("Owner").Create(&rental).Error, "failed to seed rental")

	return rental
}
