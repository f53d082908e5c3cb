package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyCart, `[{"id":"A","quantity":1}]`))
	v, err := s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"A","quantity":1}]`, v)

	// whole-blob overwrite
	require.NoError(t, s.Set(ctx, KeyCart, "[]"))
	v, err = s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestFileStoreRemove(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, KeyToken, "tok"))
	require.NoError(t, s.Remove(ctx, KeyToken))
	_, err = s.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	// removing an absent key is fine
	assert.NoError(t, s.Remove(ctx, KeyToken))
}

func TestFileStoreFailedSetKeepsOldValue(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions do not bind for root")
	}
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyCart, `[{"id":"A","quantity":1}]`))

	// a read-only dir blocks the temp file and the rename, so the write
	// cannot happen halfway
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	require.Error(t, s.Set(ctx, KeyCart, "[]"))

	v, err := s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"A","quantity":1}]`, v)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, KeyUser, `{"name":"Asha"}`))

	s2, err := NewFileStore(dir)
	require.NoError(t, err)
	v, err := s2.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Asha"}`, v)
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Remove(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
