// Package config provides application configuration loading.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables. A double underscore
// separates nesting levels so key names can keep single underscores:
// JOBBOARD_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns.
const envPrefix = "JOBBOARD_"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	JWT       JWTConfig       `koanf:"jwt"`
	Cookie    CookieConfig    `koanf:"cookie"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Directory DirectoryConfig `koanf:"directory"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	MetricsPort       string        `koanf:"metrics_port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// DatabaseConfig contains PostgreSQL settings. AdminURL is an optional
// privileged DSN used by the admin surface; when empty the primary DSN is
// used for privileged operations too.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	AdminURL        string        `koanf:"admin_url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `koanf:"connect_timeout"`
	ConnectAttempts int           `koanf:"connect_attempts"`
	Migrate         bool          `koanf:"migrate"`
}

// JWTConfig contains token signing settings.
type JWTConfig struct {
	SecretKey            string        `koanf:"secret_key"`
	AccessTokenDuration  time.Duration `koanf:"access_token_duration"`
	RefreshTokenDuration time.Duration `koanf:"refresh_token_duration"`
}

// CookieConfig contains auth cookie settings.
type CookieConfig struct {
	Secure bool   `koanf:"secure"`
	Domain string `koanf:"domain"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DirectoryConfig contains identity-directory client settings.
type DirectoryConfig struct {
	BaseURL           string        `koanf:"base_url"`
	SecretKey         string        `koanf:"secret_key"`
	PublishableKey    string        `koanf:"publishable_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RateLimit         float64       `koanf:"rate_limit"`
	LookupConcurrency int           `koanf:"lookup_concurrency"`
	LookupTimeout     time.Duration `koanf:"lookup_timeout"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "8080",
			MetricsPort:       "9090",
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			ConnectTimeout:  30 * time.Second,
			ConnectAttempts: 5,
			Migrate:         true,
		},
		JWT: JWTConfig{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 720 * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Directory: DirectoryConfig{
			BaseURL:           "https://api.clerk.com/v1",
			Timeout:           10 * time.Second,
			RateLimit:         20,
			LookupConcurrency: 5,
			LookupTimeout:     5 * time.Second,
		},
	}
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if c.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is required")
	}
	return nil
}
