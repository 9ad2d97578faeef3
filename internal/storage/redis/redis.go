// Package redis stores values in Redis under an optional key prefix.
package redis

import (
	"context"
	"errors"

	"github.com/and161185/atns-client/internal/errs"
	goredis "github.com/redis/go-redis/v9"
)

// Store is a Redis-backed storage.KV. Keys carry no TTL: the session lives until logout.
type Store struct {
	rdb    goredis.UniversalClient
	prefix string
}

// New wraps an existing client.
func New(rdb goredis.UniversalClient, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Dial connects to addr and pings it once.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return New(rdb, prefix), nil
}

// Close closes the underlying client.
func (s *Store) Close() error { return s.rdb.Close() }

func (s *Store) key(k string) string { return s.prefix + k }

// Get returns the value for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, errs.ErrNotFound
	}
	return b, err
}

// Put replaces the value for key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}
