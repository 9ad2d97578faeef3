package postgres

import (
	"context"
	"errors"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/jackc/pgx/v5"
)

// Store implements storage.KV on the client_kv table.
type Store struct{ db *DB }

// NewStore constructs a Postgres-backed store.
func NewStore(db *DB) *Store { return &Store{db: db} }

// Get selects the value for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM client_kv WHERE key=$1`
	var v []byte
	if err := s.db.Pool.QueryRow(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Put upserts the value for key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO client_kv (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`
	_, err := s.db.Pool.Exec(ctx, q, key, value)
	return err
}
