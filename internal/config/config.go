// Package config loads client settings from a YAML file and ATNS_* environment
// variables. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/and161185/atns-client/internal/gateway"
	"github.com/and161185/atns-client/internal/session"
	"github.com/and161185/atns-client/internal/storage/file"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Environment overrides.
const (
	EnvBaseURL     = "ATNS_BASE_URL"
	EnvPassphrase  = "ATNS_PASSPHRASE"
	EnvRedisAddr   = "ATNS_REDIS_ADDR"
	EnvPostgresDSN = "ATNS_POSTGRES_DSN"
	EnvBackend     = "ATNS_STORAGE"
	EnvDebug       = "ATNS_DEBUG"
)

// Config is the full client configuration.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	Debug   bool          `yaml:"debug,omitempty"`
	Storage Storage       `yaml:"storage"`
}

// Storage selects and configures where the session lives.
type Storage struct {
	Backend    string   `yaml:"backend"`
	Key        string   `yaml:"key,omitempty"`
	Dir        string   `yaml:"dir,omitempty"`
	Passphrase string   `yaml:"passphrase,omitempty"` // enables at-rest encryption
	Redis      Redis    `yaml:"redis,omitempty"`
	Postgres   Postgres `yaml:"postgres,omitempty"`
}

// Redis backend settings.
type Redis struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// Postgres backend settings.
type Postgres struct {
	DSN     string `yaml:"dsn,omitempty"`
	Migrate bool   `yaml:"migrate,omitempty"`
}

// DefaultPath is $XDG_CONFIG_HOME/atns/config.yaml.
func DefaultPath() string {
	return filepath.Join(file.DefaultDir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL: gateway.DefaultBaseURL,
		Storage: Storage{
			Backend: BackendFile,
			Key:     session.DefaultKey,
			Dir:     file.DefaultDir(),
			Redis:   Redis{Prefix: "atns:"},
		},
	}
}

// Load applies, in order: defaults, the YAML file at path, then environment
// variables read through getenv. A missing file is fine only when path is
// the default location.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath():
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.applyEnv(getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(EnvPassphrase); v != "" {
		c.Storage.Passphrase = v
	}
	if v := getenv(EnvBackend); v != "" {
		c.Storage.Backend = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Storage.Redis.Addr = v
	}
	if v := getenv(EnvPostgresDSN); v != "" {
		c.Storage.Postgres.DSN = v
	}
	if v := getenv(EnvDebug); v != "" {
		c.Debug, _ = strconv.ParseBool(v)
	}
}

// Validate checks the combination of settings.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q: want http(s)://host/...", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	switch c.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for the redis backend")
		}
	case BackendPostgres:
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Storage.Passphrase != "" {
		c.Storage.Passphrase = "******"
	}
	if c.Storage.Redis.Password != "" {
		c.Storage.Redis.Password = "******"
	}
	if c.Storage.Postgres.DSN != "" {
		if u, err := url.Parse(c.Storage.Postgres.DSN); err == nil && u.User != nil {
			if _, ok := u.User.Password(); ok {
				u.User = url.UserPassword(u.User.Username(), "xxxxx")
				c.Storage.Postgres.DSN = u.String()
			}
		}
	}
	return c
}

// Save writes the config with restrictive permissions.
func (c Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
