package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyJWTSecret error if config auth.jwt.secretkey is empty.
	ErrEmptyJWTSecret = errors.New("toml config auth.jwt.secretkey can not be empty")

	// ErrJWTSecretTooShort error if config auth.jwt.secretkey is shorter than 32 bytes.
	ErrJWTSecretTooShort = errors.New("toml config auth.jwt.secretkey must be at least 32 bytes")

	// ErrInvalidJWTExpiration error if config auth.jwt.expiration is not positive.
	ErrInvalidJWTExpiration = errors.New("toml config auth.jwt.expiration must be a positive number of milliseconds")

	// ErrUnknownPasswordAlgorithm error if config auth.password.algorithm is neither bcrypt nor argon2id.
	ErrUnknownPasswordAlgorithm = errors.New("toml config auth.password.algorithm must be bcrypt or argon2id")

	// ErrUnknownGormEngine error if config db.gormengine is not mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine must be mysql, postgres or sqlite")
)
