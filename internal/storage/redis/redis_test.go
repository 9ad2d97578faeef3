package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/and161185/atns-client/internal/errs"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func TestStore_GetPut(t *testing.T) {
	mr, rdb := newTestRedis(t)
	s := New(rdb, "atns:")
	ctx := context.Background()

	_, err := s.Get(ctx, "auth-storage")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, s.Put(ctx, "auth-storage", []byte(`{"token":"t"}`)))

	raw, err := mr.Get("atns:auth-storage")
	require.NoError(t, err)
	require.JSONEq(t, `{"token":"t"}`, raw)
	require.Zero(t, mr.TTL("atns:auth-storage"))

	got, err := s.Get(ctx, "auth-storage")
	require.NoError(t, err)
	require.JSONEq(t, `{"token":"t"}`, string(got))
}

func TestStore_BackendErrorPropagates(t *testing.T) {
	mr, rdb := newTestRedis(t)
	s := New(rdb, "")
	mr.SetError("boom")

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)
	require.Error(t, s.Put(context.Background(), "k", []byte("v")))
}

func TestDial(t *testing.T) {
	mr, _ := newTestRedis(t)

	s, err := Dial(context.Background(), mr.Addr(), "", 0, "p:")
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Put(context.Background(), "k", []byte("v")))
	require.True(t, mr.Exists("p:k"))

	_, err = Dial(context.Background(), "127.0.0.1:1", "", 0, "")
	require.Error(t, err)
}
