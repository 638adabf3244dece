// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment variables overriding single config keys,
	// e.g. CHATOP_AUTH_JWT_SECRETKEY for Auth.JWT.SecretKey.
	EnvPrefix = "CHATOP"

	// EnvConfigJSON names the environment variable holding a JSON config overlay.
	EnvConfigJSON = "CHATOP_CONFIG_JSON"

	defaultShutDownTime    = 5
	defaultUploadDirectory = "./uploads"
	defaultPublicPath      = "/images"
	defaultGormEngine      = "mysql"
	defaultCheckAliveURI   = "/checkalive"
	minSecretLength        = 32
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config overlay")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Auth.JWT.SecretKey == "" {
		return errors.Wrap(ErrEmptyJWTSecret, invalidErrMessage)
	}

	if len(c.Auth.JWT.SecretKey) < minSecretLength {
		return errors.Wrap(ErrJWTSecretTooShort, invalidErrMessage)
	}

	if c.Auth.JWT.Expiration <= 0 {
		return errors.Wrap(ErrInvalidJWTExpiration, invalidErrMessage)
	}

	switch strings.ToLower(c.Auth.Password.Algorithm) {
	case "", "bcrypt", "argon2id":
	default:
		return errors.Wrap(ErrUnknownPasswordAlgorithm, invalidErrMessage)
	}

	switch strings.ToLower(c.DB.GormEngine) {
	case "":
		c.DB.GormEngine = defaultGormEngine
	case "mysql", "postgres", "sqlite":
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	if c.Storage.UploadDirectory == "" {
		c.Storage.UploadDirectory = defaultUploadDirectory
	}

	if c.Storage.PublicPath == "" {
		c.Storage.PublicPath = defaultPublicPath
	}

	return nil
}
