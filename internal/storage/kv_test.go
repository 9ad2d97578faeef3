package storage

import (
	"context"
	"testing"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetPutCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, errs.ErrNotFound)

	v := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", v))
	v[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _ := m.Get(ctx, "k")
	require.Equal(t, "abc", string(again))
}
