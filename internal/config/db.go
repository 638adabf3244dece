package config

import "time"

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or file path for sqlite
	GormEngine string // mysql, postgres or sqlite

	LogLevel      string        // gorm log level: silent, error, warn or info
	SlowThreshold time.Duration // queries slower than this are logged as warnings
}
