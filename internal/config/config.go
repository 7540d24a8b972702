// Package config loads the service configuration from config.toml, an
// optional per-environment overlay, a .env file, and FLAMES_* environment
// variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/flames/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvFlamesEnv             = "FLAMES_ENV"
	EnvFlamesDebug           = "FLAMES_DEBUG"
	EnvFlamesShutdownTimeout = "FLAMES_SHUTDOWN_TIMEOUT"
	EnvFlamesVersion         = "FLAMES_VERSION"
)

var databaseEnv = &database.Env{
	Driver:          "FLAMES_DB_DRIVER",
	URL:             "DATABASE_URL",
	Path:            "FLAMES_DB_PATH",
	Host:            "FLAMES_DB_HOST",
	Port:            "FLAMES_DB_PORT",
	Name:            "FLAMES_DB_NAME",
	User:            "FLAMES_DB_USER",
	Password:        "FLAMES_DB_PASSWORD",
	SSLMode:         "FLAMES_DB_SSL_MODE",
	MaxOpenConns:    "FLAMES_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "FLAMES_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "FLAMES_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "FLAMES_DB_CONN_TIMEOUT",
	AutoMigrate:     "FLAMES_DB_AUTO_MIGRATE",
}

// Config is the root configuration for the FLAMES service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	API             APIConfig       `toml:"api"`
	Web             WebConfig       `toml:"web"`
	Debug           bool            `toml:"debug"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the FLAMES_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvFlamesEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads .env (if present) into the process environment without
// overriding variables that are already set, then the base config and any
// FLAMES_ENV overlay, and finally finalizes every section. With no files at
// all, defaults and environment variables provide the whole configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
// Debug is only ever switched on by an overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Debug {
		c.Debug = true
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.Web.Merge(&overlay.Web)
}

// Finalize applies defaults, environment overrides, and validation to the
// root and every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Web.Finalize(); err != nil {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvFlamesDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
	if v := os.Getenv(EnvFlamesShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvFlamesVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvFlamesEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
