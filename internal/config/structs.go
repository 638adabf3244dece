package config

import (
	"time"

	"github.com/chatop/chatop-api/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Storage   Storage
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown in seconds
	URL            string // base url for the webserver
	BodyLimit      int    // max request body size in bytes, 0 uses the fiber default
	CheckAliveURI  string // health check path, defaults to /checkalive
}

// Auth holds token and password settings.
type Auth struct {
	JWT      JWT
	Password Password
}

// JWT holds the bearer token settings. Both values are fixed for the process lifetime.
type JWT struct {
	SecretKey  string // HMAC signing secret
	Expiration int64  // token lifetime in milliseconds
}

// TTL returns Expiration as duration.
func (j JWT) TTL() time.Duration {
	return time.Duration(j.Expiration) * time.Millisecond
}

// Password holds the password hashing settings.
type Password struct {
	Algorithm  string // bcrypt (default) or argon2id
	BcryptCost int    // 0 uses bcrypt.DefaultCost
}

// Storage holds the rental picture upload settings.
type Storage struct {
	UploadDirectory string // directory uploaded pictures are written to
	PublicPath      string // url path the upload directory is served at
}

// Seed holds the initial data settings.
type Seed struct {
	Enabled         bool   // create the default accounts if the user table is empty
	DefaultPassword string // password of the default accounts
}
