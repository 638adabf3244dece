// Package daemon wires configuration, database, authentication and the web service.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/config"
	"github.com/chatop/chatop-api/internal/db"
	"github.com/chatop/chatop-api/internal/db/controller/user"
	"github.com/chatop/chatop-api/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it is shut down.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// NewAuthService builds the token service, password hasher and credential store from cfg.
func NewAuthService(cfg *config.Config, database *gorm.DB) (*auth.Service, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.JWT.SecretKey, cfg.Auth.JWT.TTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token service")
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.Password.Algorithm, cfg.Auth.Password.BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create password hasher")
	}

	return auth.NewService(tokens, hasher, user.NewStore(database)), nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	database, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(database); err != nil {
		return nil, err
	}

	authService, err := NewAuthService(cfg, database)
	if err != nil {
		return nil, err
	}

	if cfg.Seed.Enabled {
		if err = seed(cfg, database, authService.Hasher()); err != nil {
			return nil, err
		}
	}

	webService, err := web.New(cfg, database, authService)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         database,
		webService: webService,
	}, nil
}
