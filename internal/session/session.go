package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/deepanshu0430/khana-client/internal/storage"
)

var ErrNotAuthenticated = errors.New("session: please log in")

// Customer mirrors the profile the OTP verification endpoint hands back.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Session is an immutable snapshot of the authenticated state. The token is
// an opaque bearer credential; the client never inspects it.
type Session struct {
	Token    string
	Customer Customer
}

func (s Session) LoggedIn() bool { return s.Token != "" }

// Manager loads and persists sessions over the key-value store. It holds no
// state of its own; every call returns a fresh value.
type Manager struct {
	store storage.Store
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// Load reads the persisted token and profile. An absent token yields a zero
// session, not an error. A corrupt profile blob degrades to an empty
// profile rather than failing the load.
func (m *Manager) Load(ctx context.Context) (Session, error) {
	token, err := m.store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}
	s := Session{Token: token}
	raw, err := m.store.Get(ctx, storage.KeyUser)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return Session{}, err
	}
	if err == nil {
		_ = json.Unmarshal([]byte(raw), &s.Customer)
	}
	return s, nil
}

// Login persists a credential obtained out of band (the OTP flow happens
// upstream) together with the customer profile.
func (m *Manager) Login(ctx context.Context, token string, customer Customer) (Session, error) {
	if token == "" {
		return Session{}, ErrNotAuthenticated
	}
	if err := m.store.Set(ctx, storage.KeyToken, token); err != nil {
		return Session{}, err
	}
	raw, err := json.Marshal(customer)
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Set(ctx, storage.KeyUser, string(raw)); err != nil {
		return Session{}, err
	}
	return Session{Token: token, Customer: customer}, nil
}

// Logout removes the persisted credential and profile.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, storage.KeyToken); err != nil {
		return err
	}
	return m.store.Remove(ctx, storage.KeyUser)
}

// Token returns the persisted token, or ErrNotAuthenticated when there is
// none. Callers use it to short-circuit before any authenticated call.
func (m *Manager) Token(ctx context.Context) (string, error) {
	s, err := m.Load(ctx)
	if err != nil {
		return "", err
	}
	if !s.LoggedIn() {
		return "", ErrNotAuthenticated
	}
	return s.Token, nil
}
