package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/and161185/atns-client/internal/config"
	"github.com/and161185/atns-client/internal/storage"
	"github.com/and161185/atns-client/internal/storage/sealed"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpen_Memory(t *testing.T) {
	t.Parallel()

	kv, closeFn, err := Open(context.Background(), config.Storage{Backend: config.BackendMemory}, nil)
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &storage.Memory{}, kv)
}

func TestOpen_FileSealed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()
	kv, closeFn, err := Open(ctx, config.Storage{Backend: config.BackendFile, Dir: dir, Passphrase: "pw"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &sealed.Store{}, kv)

	require.NoError(t, kv.Put(ctx, "auth-storage", []byte(`{"token":"tok123"}`)))
	raw, err := os.ReadFile(filepath.Join(dir, "auth-storage.json"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "tok123")

	got, err := kv.Get(ctx, "auth-storage")
	require.NoError(t, err)
	require.JSONEq(t, `{"token":"tok123"}`, string(got))
}

func TestOpen_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	ctx := context.Background()
	kv, closeFn, err := Open(ctx, config.Storage{
		Backend: config.BackendRedis,
		Redis:   config.Redis{Addr: mr.Addr(), Prefix: "atns:"},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, kv.Put(ctx, "auth-storage", []byte("{}")))
	v, err := mr.Get("atns:auth-storage")
	require.NoError(t, err)
	require.Equal(t, "{}", v)
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := Open(context.Background(), config.Storage{Backend: "etcd"}, nil)
	require.ErrorContains(t, err, "unknown storage backend")

	_, _, err = Open(context.Background(), config.Storage{Backend: config.BackendRedis, Redis: config.Redis{Addr: "127.0.0.1:1"}}, nil)
	require.ErrorContains(t, err, "redis backend")
}
