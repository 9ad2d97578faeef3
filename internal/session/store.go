// Package session holds the process-wide identity of the logged-in user and
// keeps it durable across restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/and161185/atns-client/internal/metrics"
	"github.com/and161185/atns-client/internal/model"
	"github.com/and161185/atns-client/internal/storage"
	"go.uber.org/zap"
)

// DefaultKey is the storage key holding the session blob.
const DefaultKey = "auth-storage"

const persistTimeout = 5 * time.Second

// Manager is the read/mutate surface consumed by the gateway, the guard and the API layer.
type Manager interface {
	// Get returns a point-in-time copy of the session.
	Get() model.Session
	// Login replaces all identity fields and marks the session authenticated.
	Login(profileID int64, username, token, refreshToken string, roles []string)
	// Logout resets every field and clears the authenticated flag.
	Logout()
	// UpdateUsername replaces only the username.
	UpdateUsername(username string)
	// UpdateToken replaces only the bearer token.
	UpdateToken(token string)
}

// Store is the persisted Manager. Every mutation is written through to storage
// before it returns; write failures are logged and counted, never returned.
type Store struct {
	kv      storage.KV
	key     string
	log     *zap.Logger
	metrics *metrics.Metrics

	mu  sync.RWMutex
	cur model.Session
}

var _ Manager = (*Store)(nil)

// Open rehydrates the session stored under key. A missing or undecodable blob
// yields an empty session; any other storage error is returned.
func Open(ctx context.Context, kv storage.KV, key string, log *zap.Logger, m *metrics.Metrics) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, key: key, log: log, metrics: m}

	b, err := kv.Get(ctx, key)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}

	var cur model.Session
	if err := json.Unmarshal(b, &cur); err != nil {
		log.Warn("discarding unreadable session", zap.String("key", key), zap.Error(err))
		return s, nil
	}
	s.cur = cur
	return s, nil
}

// Get returns a deep copy of the current session.
func (s *Store) Get() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Clone()
}

// Login replaces all five identity fields at once.
func (s *Store) Login(profileID int64, username, token, refreshToken string, roles []string) {
	next := model.Session{
		ProfileID:       &profileID,
		Username:        &username,
		Token:           &token,
		RefreshToken:    &refreshToken,
		IsAuthenticated: true,
	}
	if roles != nil {
		next.Roles = append([]string{}, roles...)
	}
	s.set(func(model.Session) model.Session { return next })
}

// Logout clears the session. Calling it twice has the same effect as once.
func (s *Store) Logout() {
	s.set(func(model.Session) model.Session { return model.Session{} })
}

// UpdateUsername replaces the username; the authenticated flag is untouched.
func (s *Store) UpdateUsername(username string) {
	s.set(func(cur model.Session) model.Session {
		cur.Username = &username
		return cur
	})
}

// UpdateToken replaces the bearer token; the authenticated flag is untouched.
func (s *Store) UpdateToken(token string) {
	s.set(func(cur model.Session) model.Session {
		cur.Token = &token
		return cur
	})
}

// set applies fn and persists under the write lock so stored order matches mutation order.
func (s *Store) set(fn func(model.Session) model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = fn(s.cur.Clone())
	s.persistLocked()
}

func (s *Store) persistLocked() {
	b, err := json.Marshal(s.cur)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err = s.kv.Put(ctx, s.key, b)
		cancel()
	}
	if err != nil {
		s.metrics.RecordPersistFailure()
		s.log.Warn("session not persisted", zap.String("key", s.key), zap.Error(err))
	}
}
