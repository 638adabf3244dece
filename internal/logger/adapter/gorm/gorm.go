// Package gorm routes gorm's SQL logger through zerolog.
package gorm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// Config of the gorm logger adapter.
type Config struct {
	// LogLevel is one of silent, error, warn or info. Empty means warn.
	LogLevel string
	// SlowThreshold marks queries as slow. Zero means 200ms.
	SlowThreshold time.Duration
}

const (
	defaultSlowThreshold = 200 * time.Millisecond
	component            = "gorm"
)

// Logger implements gorm's logger.Interface with zerolog.
type Logger struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

// ParseLevel maps a level name to gorm's log level.
func ParseLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// New creates a gorm logger writing to l.
func New(l zerolog.Logger, cfg Config) *Logger {
	slow := cfg.SlowThreshold
	if slow == 0 {
		slow = defaultSlowThreshold
	}

	return &Logger{
		log:   l.With().Str("component", component).Logger(),
		level: ParseLevel(cfg.LogLevel),
		slow:  slow,
	}
}

// LogMode returns a copy logging at level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

// Info logs gorm info messages.
func (l *Logger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msgf(msg, data...)
	}
}

// Warn logs gorm warnings.
func (l *Logger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msgf(msg, data...)
	}
}

// Error logs gorm errors.
func (l *Logger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msgf(msg, data...)
	}
}

// Trace logs one executed statement: failed ones as error, slow ones as warning, all at info level as debug.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn().Dur("elapsed", elapsed).Dur("threshold", l.slow).Int64("rows", rows).Str("sql", sql).
			Msg("SLOW SQL")
	case l.level == gormlogger.Info:
		sql, rows := fc()
		l.log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
