// Package config loads the service configuration from TOML files layered with
// GROUNDTRUTH_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/groundtruth/pkg/auth"
	"github.com/JaimeStill/groundtruth/pkg/database"
	"github.com/JaimeStill/groundtruth/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvGroundtruthEnv             = "GROUNDTRUTH_ENV"
	EnvGroundtruthShutdownTimeout = "GROUNDTRUTH_SHUTDOWN_TIMEOUT"
	EnvGroundtruthVersion         = "GROUNDTRUTH_VERSION"
)

var databaseEnv = &database.Env{
	Driver:          "GROUNDTRUTH_DB_DRIVER",
	Host:            "GROUNDTRUTH_DB_HOST",
	Port:            "GROUNDTRUTH_DB_PORT",
	Name:            "GROUNDTRUTH_DB_NAME",
	User:            "GROUNDTRUTH_DB_USER",
	Password:        "GROUNDTRUTH_DB_PASSWORD",
	SSLMode:         "GROUNDTRUTH_DB_SSL_MODE",
	Path:            "GROUNDTRUTH_DB_PATH",
	MaxOpenConns:    "GROUNDTRUTH_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "GROUNDTRUTH_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "GROUNDTRUTH_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "GROUNDTRUTH_DB_CONN_TIMEOUT",
	AutoMigrate:     "GROUNDTRUTH_DB_AUTO_MIGRATE",
}

var storageEnv = &storage.Env{
	Backend:          "GROUNDTRUTH_STORAGE_BACKEND",
	BaseDir:          "GROUNDTRUTH_STORAGE_BASE_DIR",
	ContainerName:    "GROUNDTRUTH_STORAGE_CONTAINER_NAME",
	ConnectionString: "GROUNDTRUTH_STORAGE_CONNECTION_STRING",
	AccountURL:       "GROUNDTRUTH_STORAGE_ACCOUNT_URL",
}

var authEnv = &auth.Env{
	Enabled:       "GROUNDTRUTH_AUTH_ENABLED",
	IssuerURL:     "GROUNDTRUTH_AUTH_ISSUER_URL",
	ClientID:      "GROUNDTRUTH_AUTH_CLIENT_ID",
	IdentityClaim: "GROUNDTRUTH_AUTH_IDENTITY_CLAIM",
}

// Config is the root configuration for the groundtruth service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Auth            auth.Config     `toml:"auth"`
	Logging         LoggingConfig   `toml:"logging"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the GROUNDTRUTH_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvGroundtruthEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load is LoadFile(BaseConfigFile).
func Load() (*Config, error) {
	return LoadFile(BaseConfigFile)
}

// LoadFile layers the base file at path and the config.<env>.toml overlay for
// GROUNDTRUTH_ENV, then finalizes every section. Missing files are skipped, so
// defaults and environment variables alone yield a complete configuration.
// Unknown keys in either file are rejected.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	for _, layer := range []string{path, overlayPath()} {
		if layer == "" {
			continue
		}
		next, err := decode(layer)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", layer, err)
		}
		cfg.Merge(next)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.Logging.Merge(&overlay.Logging)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvGroundtruthShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvGroundtruthVersion); v != "" {
		c.Version = v
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"auth", func() error { return c.Auth.Finalize(authEnv) }},
		{"logging", c.Logging.Finalize},
		{"api", c.API.Finalize},
	}

	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func decode(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parse config: %s", strict.String())
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvGroundtruthEnv); env != "" {
		return fmt.Sprintf(OverlayConfigPattern, env)
	}
	return ""
}
