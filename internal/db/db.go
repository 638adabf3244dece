// Package db opens and migrates the application database.
package db

import (
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/config"
	"github.com/chatop/chatop-api/internal/db/dsn"
	"github.com/chatop/chatop-api/internal/db/models"
	gormadapter "github.com/chatop/chatop-api/internal/logger/adapter/gorm"
)

// ErrConfigNil is returned by Open without configuration.
var ErrConfigNil = errors.New("config is nil")

// Dialector selects the gorm driver for cfg.DB.GormEngine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.DB.GormEngine) {
	case "", "mysql":
		return gormmysql.Open(dsn.Create(cfg)), nil
	case "postgres":
		return gormpostgres.Open(dsn.CreatePostgres(cfg)), nil
	case "sqlite":
		return sqlite.Open(cfg.DB.Name), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}
}

// Open connects to the configured database. SQL statements are logged through zerolog.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormadapter.New(log.Logger, gormadapter.Config{
			LogLevel:      cfg.DB.LogLevel,
			SlowThreshold: cfg.DB.SlowThreshold,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", dialector.Name())
	}

	return db, nil
}

// Migrate creates or updates the tables of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
