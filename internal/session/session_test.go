package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepanshu0430/khana-client/internal/storage"
)

func TestLoadWithoutTokenIsZeroSession(t *testing.T) {
	m := NewManager(storage.NewMemStore())

	s, err := m.Load(context.Background())

	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Customer.Name)
}

func TestLoginLoadLogout(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemStore()
	m := NewManager(kv)

	s, err := m.Login(ctx, "tok-123", Customer{Name: "Asha", Email: "asha@example.com", Address: "12 MG Road"})
	require.NoError(t, err)
	assert.True(t, s.LoggedIn())

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	tok, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	require.NoError(t, m.Logout(ctx))
	got, err = m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.LoggedIn())
	_, err = m.Token(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	m := NewManager(storage.NewMemStore())

	_, err := m.Login(context.Background(), "", Customer{})

	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCorruptProfileDegradesToEmptyCustomer(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemStore()
	require.NoError(t, kv.Set(ctx, storage.KeyToken, "tok-123"))
	require.NoError(t, kv.Set(ctx, storage.KeyUser, "{broken"))

	s, err := NewManager(kv).Load(ctx)

	require.NoError(t, err)
	assert.True(t, s.LoggedIn())
	assert.Empty(t, s.Customer.Name)
}
