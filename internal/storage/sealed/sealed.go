// Package sealed wraps a storage.KV and encrypts values at rest.
//
// Blob layout: version(1) || salt(16) || nonce(24) || XChaCha20-Poly1305(value, aad=key).
// The AEAD key is Argon2id(passphrase, salt).
package sealed

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"sync"

	"github.com/and161185/atns-client/internal/storage"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Params
const (
	KeyLen  = 32
	SaltLen = 16

	blobVersion byte = 1

	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 1
)

// ErrBadBlob is returned when a stored value cannot be opened.
var ErrBadBlob = errors.New("sealed: malformed or tampered blob")

// Rand returns n cryptographically secure random bytes.
func Rand(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// DeriveKey derives the AEAD key from passphrase and salt using Argon2id.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, KeyLen)
}

// Seal encrypts plaintext with key, binding it to aad, and prepends a random nonce.
func Seal(key, aad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce, err := Rand(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, plaintext, aad)...)
	return out, nil
}

// Open reverses Seal.
func Open(key, aad, sealed []byte) ([]byte, error) {
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return nil, ErrBadBlob
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := sealed[:chacha20poly1305.NonceSizeX]
	ct := sealed[chacha20poly1305.NonceSizeX:]
	pt, err := aead.Open(nil, nonce, ct, aad)
	if err != nil {
		return nil, ErrBadBlob
	}
	return pt, nil
}

// Store encrypts every value before handing it to the inner KV.
type Store struct {
	inner      storage.KV
	passphrase []byte

	mu   sync.Mutex
	salt []byte
	key  []byte
}

// New wraps inner; passphrase must be non-empty.
func New(inner storage.KV, passphrase string) (*Store, error) {
	if passphrase == "" {
		return nil, errors.New("sealed: empty passphrase")
	}
	return &Store{inner: inner, passphrase: []byte(passphrase)}, nil
}

// keyFor returns the key for salt, deriving it once per salt.
func (s *Store) keyFor(salt []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil && bytes.Equal(s.salt, salt) {
		return s.key
	}
	s.salt = append([]byte(nil), salt...)
	s.key = DeriveKey(s.passphrase, s.salt)
	return s.key
}

// current returns the salt/key pair used for new writes.
func (s *Store) current() ([]byte, []byte, error) {
	s.mu.Lock()
	if s.key != nil {
		salt, key := s.salt, s.key
		s.mu.Unlock()
		return salt, key, nil
	}
	s.mu.Unlock()

	salt, err := Rand(SaltLen)
	if err != nil {
		return nil, nil, err
	}
	return salt, s.keyFor(salt), nil
}

// Get opens the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(blob) < 1+SaltLen || blob[0] != blobVersion {
		return nil, ErrBadBlob
	}
	salt := blob[1 : 1+SaltLen]
	return Open(s.keyFor(salt), []byte(key), blob[1+SaltLen:])
}

// Put seals value and stores it under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	salt, k, err := s.current()
	if err != nil {
		return err
	}
	ct, err := Seal(k, []byte(key), value)
	if err != nil {
		return err
	}
	blob := make([]byte, 0, 1+len(salt)+len(ct))
	blob = append(blob, blobVersion)
	blob = append(blob, salt...)
	blob = append(blob, ct...)
	return s.inner.Put(ctx, key, blob)
}
