package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/and161185/atns-client/internal/gateway"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_DefaultsWhenDefaultFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("", env(nil))
	require.NoError(t, err)
	require.Equal(t, gateway.DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, BackendFile, cfg.Storage.Backend)
	require.Equal(t, "auth-storage", cfg.Storage.Key)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
	require.ErrorContains(t, err, "read config")
}

func TestLoad_FileThenEnv(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://atns.example.com/api/v1
timeout: 15s
storage:
  backend: redis
  redis:
    addr: localhost:6379
    db: 2
`), 0o600))

	cfg, err := Load(path, env(nil))
	require.NoError(t, err)
	require.Equal(t, "https://atns.example.com/api/v1", cfg.BaseURL)
	require.Equal(t, 15*time.Second, cfg.Timeout)
	require.Equal(t, BackendRedis, cfg.Storage.Backend)
	require.Equal(t, 2, cfg.Storage.Redis.DB)
	require.Equal(t, "atns:", cfg.Storage.Redis.Prefix, "unset keys keep defaults")

	cfg, err = Load(path, env(map[string]string{
		EnvBaseURL:    "http://other:9000/api/v1",
		EnvRedisAddr:  "redis:6380",
		EnvPassphrase: "hunter2",
		EnvDebug:      "true",
	}))
	require.NoError(t, err)
	require.Equal(t, "http://other:9000/api/v1", cfg.BaseURL)
	require.Equal(t, "redis:6380", cfg.Storage.Redis.Addr)
	require.Equal(t, "hunter2", cfg.Storage.Passphrase)
	require.True(t, cfg.Debug)
}

func TestLoad_BadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [oops"), 0o600))
	_, err := Load(path, env(nil))
	require.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"bad url", func(c *Config) { c.BaseURL = "localhost:8080" }, "base_url"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"redis without addr", func(c *Config) { c.Storage.Backend = BackendRedis }, "redis.addr"},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = BackendPostgres }, "postgres.dsn"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "s3" }, "unknown storage backend"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Storage.Passphrase = "hunter2"
	cfg.Storage.Redis.Password = "redispw"
	cfg.Storage.Postgres.DSN = "postgres://u:secret@db:5432/atns"

	r := cfg.Redacted()
	require.NotEqual(t, "hunter2", r.Storage.Passphrase)
	require.NotEqual(t, "redispw", r.Storage.Redis.Password)
	require.NotContains(t, r.Storage.Postgres.DSN, "secret")
	require.Equal(t, "hunter2", cfg.Storage.Passphrase, "original untouched")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.BaseURL = "https://x.example/api/v1"
	cfg.Timeout = 3 * time.Second
	require.NoError(t, cfg.Save(path))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	got, err := Load(path, env(nil))
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
