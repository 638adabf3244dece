package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func configDir(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func validConfig() Config {
	return Config{
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Auth: Auth{
			JWT: JWT{SecretKey: testSecret, Expiration: 1000},
		},
	}
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(configDir(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	// Test DB config
	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}

	if cfg.DB.SlowThreshold != 200*time.Millisecond {
		t.Errorf("DB.SlowThreshold = %v, want 200ms", cfg.DB.SlowThreshold)
	}

	// Test auth config
	if cfg.Auth.JWT.TTL() != 24*time.Hour {
		t.Errorf("Auth.JWT.TTL() = %v, want 24h", cfg.Auth.JWT.TTL())
	}

	if cfg.Auth.Password.Algorithm != "bcrypt" {
		t.Errorf("Auth.Password.Algorithm = %q, want bcrypt", cfg.Auth.Password.Algorithm)
	}

	if cfg.Storage.PublicPath != "/images" {
		t.Errorf("Storage.PublicPath = %q, want /images", cfg.Storage.PublicPath)
	}

	if cfg.Log.File.Access.File != "access.log" || !cfg.Log.File.Trace.Compress {
		t.Errorf("Log.File = %+v, want access.log and compressed trace", cfg.Log.File)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Fatal("ReadConfig() expected error for a directory without main.toml")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			modify: func(_ *Config) {},
		},
		{
			name:    "missing port",
			modify:  func(c *Config) { c.Webserver.Port = 0 },
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:    "missing URL",
			modify:  func(c *Config) { c.Webserver.URL = "" },
			wantErr: ErrEmptyURL,
		},
		{
			name:    "empty secret",
			modify:  func(c *Config) { c.Auth.JWT.SecretKey = "" },
			wantErr: ErrEmptyJWTSecret,
		},
		{
			name:    "short secret",
			modify:  func(c *Config) { c.Auth.JWT.SecretKey = "short" },
			wantErr: ErrJWTSecretTooShort,
		},
		{
			name:    "zero expiration",
			modify:  func(c *Config) { c.Auth.JWT.Expiration = 0 },
			wantErr: ErrInvalidJWTExpiration,
		},
		{
			name:    "negative expiration",
			modify:  func(c *Config) { c.Auth.JWT.Expiration = -5 },
			wantErr: ErrInvalidJWTExpiration,
		},
		{
			name:    "unknown password algorithm",
			modify:  func(c *Config) { c.Auth.Password.Algorithm = "md5" },
			wantErr: ErrUnknownPasswordAlgorithm,
		},
		{
			name:   "argon2id accepted",
			modify: func(c *Config) { c.Auth.Password.Algorithm = "argon2id" },
		},
		{
			name:    "unknown gorm engine",
			modify:  func(c *Config) { c.DB.GormEngine = "oracle" },
			wantErr: ErrUnknownGormEngine,
		},
		{
			name:   "sqlite accepted",
			modify: func(c *Config) { c.DB.GormEngine = "sqlite" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := validate(&cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validate() error = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := validConfig()

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.DB.GormEngine != defaultGormEngine {
		t.Errorf("DB.GormEngine = %q, want %q", cfg.DB.GormEngine, defaultGormEngine)
	}

	if cfg.Webserver.ShutDownTime != defaultShutDownTime {
		t.Errorf("Webserver.ShutDownTime = %d, want %d", cfg.Webserver.ShutDownTime, defaultShutDownTime)
	}

	if cfg.Webserver.CheckAliveURI != defaultCheckAliveURI {
		t.Errorf("Webserver.CheckAliveURI = %q, want %q", cfg.Webserver.CheckAliveURI, defaultCheckAliveURI)
	}

	if cfg.Storage.UploadDirectory != defaultUploadDirectory {
		t.Errorf("Storage.UploadDirectory = %q, want %q", cfg.Storage.UploadDirectory, defaultUploadDirectory)
	}

	if cfg.Storage.PublicPath != defaultPublicPath {
		t.Errorf("Storage.PublicPath = %q, want %q", cfg.Storage.PublicPath, defaultPublicPath)
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	// Set JSON override environment variable
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	cfg, err := ReadConfig(configDir(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL from main.toml should survive the overlay")
	}
}

func TestReadConfigWithInvalidJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	if _, err := ReadConfig(configDir(t)); err == nil {
		t.Fatal("ReadConfig() expected error for malformed JSON overlay")
	}
}

func TestReadConfigWithEnvOverride(t *testing.T) {
	secret := strings.Repeat("s", 40)
	t.Setenv("CHATOP_AUTH_JWT_SECRETKEY", secret)

	cfg, err := ReadConfig(configDir(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Auth.JWT.SecretKey != secret {
		t.Errorf("Auth.JWT.SecretKey = %q, want the env value", cfg.Auth.JWT.SecretKey)
	}
}

func TestReadConfigRejectsShortSecretFromEnv(t *testing.T) {
	t.Setenv("CHATOP_AUTH_JWT_SECRETKEY", "tooshort")

	_, err := ReadConfig(configDir(t))
	if !errors.Is(err, ErrJWTSecretTooShort) {
		t.Fatalf("ReadConfig() error = %v, want %v", err, ErrJWTSecretTooShort)
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Title = "Test"
	cfg.DevMode = true

	tomlStr, err := DumpConfig(&cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if tomlStr == "" {
		t.Error("DumpConfig() returned empty string")
	}

	// Check if output contains expected values
	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}

	if !strings.Contains(tomlStr, "[Auth.JWT]") {
		t.Error("DumpConfig() output should contain the Auth.JWT table")
	}
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := validConfig()
	cfg.Title = "Test"
	cfg.DevMode = true

	jsonStr, err := DumpConfigJSON(&cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if jsonStr == "" {
		t.Error("DumpConfigJSON() returned empty string")
	}

	// Check if output is valid JSON by checking for expected fields
	if !strings.Contains(jsonStr, "Test") {
		t.Error("DumpConfigJSON() output should contain Title")
	}
}
