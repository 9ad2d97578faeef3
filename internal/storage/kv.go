// Package storage defines the durable key-value layer that holds the session blob.
// Concrete backends live in subpackages.
package storage

import (
	"context"
	"sync"

	"github.com/and161185/atns-client/internal/errs"
)

// KV stores opaque values under string keys.
type KV interface {
	// Get returns the value for key or errs.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error
}

// Memory is an in-process KV used in tests and with the "memory" backend.
type Memory struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemory returns an empty in-process KV.
func NewMemory() *Memory { return &Memory{m: map[string][]byte{}} }

// Get returns a copy of the stored value.
func (s *Memory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (s *Memory) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}
