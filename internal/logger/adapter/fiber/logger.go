// Package fiber provides a zerolog based access log middleware for fiber.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chatop/chatop-api/internal/auth"
	"github.com/chatop/chatop-api/internal/logger"
)

// PerformanceHeader carries the handling time in seconds.
const PerformanceHeader = "X-Performance"

// Config of the access log middleware.
type Config struct {
	// Next skips logging of a request when it returns true.
	Next func(c *fiber.Ctx) bool

	// Log selects the outputs: the access rotation of Log.File and, with
	// Log.AccessToConsole, stdout.
	Log logger.Log

	// CheckAliveURI is not logged if Log.DisableCheckAlive is set.
	CheckAliveURI string

	// Output replaces the outputs derived from Log.
	Output io.Writer
}

// New creates the access log middleware.
// Chain errors are resolved through the app error handler first, so the logged status is the one sent.
func New(cfg Config) fiber.Handler {
	out := cfg.Output
	if out == nil {
		out = outputs(cfg.Log)
	}

	access := zerolog.New(out).With().Timestamp().Logger()

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
			}
		}

		elapsed := time.Since(start).Seconds()
		c.Set(PerformanceHeader, strconv.FormatFloat(elapsed, 'f', 6, 64))

		if cfg.Log.DisableCheckAlive && c.Path() == cfg.CheckAliveURI {
			return nil
		}

		// fasthttp normalizes the path, the original one is logged
		uri := string(c.Request().RequestURI())

		entry := access.Log().
			Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("uri", uri).
			Int("status", c.Response().StatusCode()).
			Float64("elapsed", elapsed).
			Bytes("host", c.Request().Host()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Str("forwarded_for", c.Get(fiber.HeaderXForwardedFor)).
			Str("referer", c.Get(fiber.HeaderReferer))

		// the subject only, the bearer token never reaches the log
		if p, ok := auth.CurrentPrincipal(c.UserContext()); ok {
			entry.Uint64("user_id", p.ID)
		}

		if chainErr != nil {
			entry.AnErr("chain_error", chainErr)
		}

		entry.Send()

		return nil
	}
}

func outputs(cfg logger.Log) io.Writer {
	var writers []io.Writer

	if cfg.File.Enabled {
		f, err := logger.NewRollingFile(cfg.File.Path, cfg.File.Access)
		if err != nil {
			log.Error().Err(err).Msg("access log file disabled")
		} else {
			writers = append(writers, f)
		}
	}

	if cfg.Console.Enabled && cfg.AccessToConsole {
		if cfg.Console.Pretty {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{zerolog.LevelFieldName},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return zerolog.MultiLevelWriter(writers...)
}
