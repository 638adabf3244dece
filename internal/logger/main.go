// Package logger configures the global zerolog logger of the service.
package logger

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter routes every log line to one writer by level.
// Debug shares the info writer, fatal and panic share the error writer.
type LevelWriter struct {
	Error io.Writer
	Warn  io.Writer
	Info  io.Writer
	Trace io.Writer
}

// Write is used for lines without a level.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.Info.Write(p) //nolint:wrapcheck
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	return lw.target(l).Write(p) //nolint:wrapcheck
}

func (lw *LevelWriter) target(l zerolog.Level) io.Writer {
	switch {
	case l == zerolog.TraceLevel:
		return lw.Trace
	case l == zerolog.WarnLevel:
		return lw.Warn
	case l > zerolog.WarnLevel:
		return lw.Error
	default:
		return lw.Info
	}
}

// Init replaces log.Logger according to cfg.
// With console and file both disabled every line is dropped.
func Init(cfg Log) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "loglevel %s is not supported", cfg.LogLevel)
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg.Console))
	}

	if cfg.File.Enabled {
		fw, err := newFileWriter(cfg.File)
		if err != nil {
			return err
		}

		writers = append(writers, fw)
	}

	zerolog.SetGlobalLevel(level)
	zerolog.ErrorHandler = ErrorHandler

	lc := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().Timestamp().
		Str("app", cfg.AppName).
		Str("service", cfg.ServiceName)

	if cfg.ReportCaller {
		lc = lc.Caller()
	}

	// stack traces of pkg/errors values are only worth their size at trace level
	if level == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		lc = lc.Stack()
	}

	log.Logger = lc.Logger()

	return nil
}

// NewRollingFile creates the log directory and returns a lumberjack logger for r.
func NewRollingFile(dir string, r Rotation) (*lumberjack.Logger, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
			return nil, errors.Wrapf(err, "can't create log directory %s", dir)
		}
	}

	return &lumberjack.Logger{
		Filename:   path.Join(dir, r.File),
		MaxSize:    r.MaxSize,
		MaxAge:     r.MaxAge,
		MaxBackups: r.MaxBackups,
		Compress:   r.Compress,
	}, nil
}

func newFileWriter(cfg LogFile) (*LevelWriter, error) {
	var (
		lw      LevelWriter
		targets = []struct {
			w *io.Writer
			r Rotation
		}{
			{&lw.Error, cfg.Error},
			{&lw.Warn, cfg.Warn},
			{&lw.Info, cfg.Info},
			{&lw.Trace, cfg.Trace},
		}
	)

	for _, t := range targets {
		f, err := NewRollingFile(cfg.Path, t.r)
		if err != nil {
			return nil, err
		}

		*t.w = f
	}

	return &lw, nil
}

// NewConsoleWriter sends info and debug to stdout, everything else to stderr.
func NewConsoleWriter(cfg Console) *LevelWriter {
	var stdout, stderr io.Writer = os.Stdout, os.Stderr

	if cfg.Pretty {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: zerolog.TimeFieldFormat}
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{Error: stderr, Warn: stderr, Info: stdout, Trace: stderr}
}
