package logger

// Console configures log output to stdout and stderr.
type Console struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
	Pretty  bool `mapstructure:"pretty"  toml:"pretty"` // human readable zerolog.ConsoleWriter instead of JSON
}

// Rotation configures one lumberjack rolling file.
type Rotation struct {
	File       string `mapstructure:"file"       toml:"file"`
	MaxSize    int    `mapstructure:"maxSize"    toml:"maxSize"` // megabytes
	MaxBackups int    `mapstructure:"maxBackups" toml:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"     toml:"maxAge"` // days
	Compress   bool   `mapstructure:"compress"   toml:"compress"`
}

// LogFile configures the rolling log files. Every stream is written below Path.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path"    toml:"path"`

	Access Rotation `mapstructure:"access" toml:"access"`
	Error  Rotation `mapstructure:"error"  toml:"error"`
	Warn   Rotation `mapstructure:"warn"   toml:"warn"`
	Info   Rotation `mapstructure:"info"   toml:"info"` // debug goes here too
	Trace  Rotation `mapstructure:"trace"  toml:"trace"`
}

// Log is the logger section of the service config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error

	// AccessToConsole mirrors the http access log to stdout. Ignored if Console is disabled.
	AccessToConsole   bool
	ReportCaller      bool
	DisableCheckAlive bool // skip access log lines for the health check

	AppName     string
	ServiceName string

	Console Console
	File    LogFile `mapstructure:"file" toml:"file"`
}
