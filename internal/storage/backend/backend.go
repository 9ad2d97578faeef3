// Package backend turns storage configuration into a ready KV.
package backend

import (
	"context"
	"fmt"

	"github.com/and161185/atns-client/internal/config"
	"github.com/and161185/atns-client/internal/migrate"
	"github.com/and161185/atns-client/internal/storage"
	"github.com/and161185/atns-client/internal/storage/file"
	"github.com/and161185/atns-client/internal/storage/postgres"
	"github.com/and161185/atns-client/internal/storage/redis"
	"github.com/and161185/atns-client/internal/storage/sealed"
	"go.uber.org/zap"
)

// Open builds the configured backend, wrapped in sealed storage when a
// passphrase is set. closeFn releases connections and is never nil.
func Open(ctx context.Context, cfg config.Storage, log *zap.Logger) (kv storage.KV, closeFn func(), err error) {
	if log == nil {
		log = zap.NewNop()
	}
	closeFn = func() {}

	switch cfg.Backend {
	case config.BackendMemory:
		kv = storage.NewMemory()
	case config.BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			dir = file.DefaultDir()
		}
		kv = file.New(dir)
	case config.BackendRedis:
		rs, err := redis.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("redis backend: %w", err)
		}
		kv = rs
		closeFn = func() {
			if err := rs.Close(); err != nil {
				log.Warn("redis close", zap.Error(err))
			}
		}
	case config.BackendPostgres:
		if cfg.Postgres.Migrate {
			files, err := migrate.Files()
			if err != nil {
				return nil, nil, fmt.Errorf("list migrations: %w", err)
			}
			log.Debug("applying migrations", zap.Strings("files", files))
			if err := migrate.Up(ctx, cfg.Postgres.DSN); err != nil {
				return nil, nil, fmt.Errorf("postgres migrations: %w", err)
			}
		}
		db, err := postgres.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres backend: %w", err)
		}
		kv = postgres.NewStore(db)
		closeFn = db.Close
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	if cfg.Passphrase != "" {
		s, err := sealed.New(kv, cfg.Passphrase)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		kv = s
	}
	log.Debug("storage ready", zap.String("backend", cfg.Backend), zap.Bool("sealed", cfg.Passphrase != ""))
	return kv, closeFn, nil
}
