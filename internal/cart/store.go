package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/deepanshu0430/khana-client/internal/catalog"
	"github.com/deepanshu0430/khana-client/internal/session"
	"github.com/deepanshu0430/khana-client/internal/storage"
)

// CatalogSource yields the current catalog snapshot.
type CatalogSource interface {
	Dishes(ctx context.Context) ([]catalog.Dish, error)
}

// Notifier receives the transient user-facing messages mutations emit.
type Notifier func(ok bool, message string)

func logNotifier(ok bool, message string) {
	if ok {
		log.Printf("[cart] %s", message)
	} else {
		log.Printf("[cart] error: %s", message)
	}
}

// Store is the single writer of the persisted cart. Mutations rewrite the
// whole line list in one Set and derive the returned view from the catalog
// snapshot held since the last Load; only Load touches the network.
type Store struct {
	kv       storage.Store
	source   CatalogSource
	sessions *session.Manager
	notify   Notifier

	mu     sync.Mutex
	dishes []catalog.Dish
}

func NewStore(kv storage.Store, source CatalogSource, sessions *session.Manager, notify Notifier) *Store {
	if notify == nil {
		notify = logNotifier
	}
	return &Store{kv: kv, source: source, sessions: sessions, notify: notify}
}

// readLines parses the persisted cart. Absent or unparsable state is an
// empty cart, never an error; only a real storage failure propagates.
func (s *Store) readLines(ctx context.Context) ([]PersistedLine, error) {
	raw, err := s.kv.Get(ctx, storage.KeyCart)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []PersistedLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, nil
	}
	return lines, nil
}

func (s *Store) writeLines(ctx context.Context, lines []PersistedLine) error {
	if lines == nil {
		lines = []PersistedLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storage.KeyCart, string(raw))
}

func (s *Store) snapshot() []catalog.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dishes
}

// Load reads the persisted cart and a fresh catalog snapshot and returns the
// reconciled view. Viewing the cart requires a session; the token check runs
// before any network call. The persisted pairs are written back as read
// (normalizing the stored JSON): a line whose dish has left the catalog is
// dropped from the view but stays in storage and reappears if the dish
// returns. Safe to call on every becomes-visible event.
func (s *Store) Load(ctx context.Context) ([]Line, []catalog.Dish, error) {
	if _, err := s.sessions.Token(ctx); err != nil {
		return nil, nil, err
	}
	lines, err := s.readLines(ctx)
	if err != nil {
		return nil, nil, err
	}
	dishes, err := s.source.Dishes(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := s.writeLines(ctx, lines); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	s.dishes = dishes
	s.mu.Unlock()
	return Reconcile(lines, dishes), dishes, nil
}

// Quantities returns the persisted quantity per dish id without requiring a
// session or touching the network. The menu uses it for its badges.
func (s *Store) Quantities(ctx context.Context) (map[string]int, error) {
	lines, err := s.readLines(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int, len(lines))
	for _, l := range lines {
		m[l.ID] = l.Quantity
	}
	return m, nil
}

// AddItem increments the line for id, or appends a new line with quantity 1.
// At most one line ever exists per id. The returned view is derived from the
// snapshot held since the last Load.
func (s *Store) AddItem(ctx context.Context, id, name string) ([]Line, error) {
	lines, err := s.readLines(ctx)
	if err != nil {
		s.notify(false, "Failed to add item to cart.")
		return nil, err
	}
	found := false
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, PersistedLine{ID: id, Quantity: 1})
	}
	if err := s.writeLines(ctx, lines); err != nil {
		s.notify(false, "Failed to add item to cart.")
		return nil, err
	}
	s.notify(true, fmt.Sprintf("%s added to cart!", name))
	return Reconcile(lines, s.snapshot()), nil
}

// ChangeQuantity adds delta to the line's quantity. A resulting quantity of
// zero or less removes the line entirely; an unknown id is a no-op.
func (s *Store) ChangeQuantity(ctx context.Context, id string, delta int) ([]Line, error) {
	lines, err := s.readLines(ctx)
	if err != nil {
		s.notify(false, "Failed to update quantity.")
		return nil, err
	}
	idx := -1
	for i := range lines {
		if lines[i].ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		lines[idx].Quantity += delta
		if lines[idx].Quantity <= 0 {
			lines = append(lines[:idx], lines[idx+1:]...)
		}
		if err := s.writeLines(ctx, lines); err != nil {
			s.notify(false, "Failed to update quantity.")
			return nil, err
		}
	}
	return Reconcile(lines, s.snapshot()), nil
}

// Remove deletes the line for id if present. Asking the user first is the
// caller's job, not the store's.
func (s *Store) Remove(ctx context.Context, id string) ([]Line, error) {
	lines, err := s.readLines(ctx)
	if err != nil {
		s.notify(false, "Failed to remove item.")
		return nil, err
	}
	filtered := make([]PersistedLine, 0, len(lines))
	for _, l := range lines {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}
	if err := s.writeLines(ctx, filtered); err != nil {
		s.notify(false, "Failed to remove item.")
		return nil, err
	}
	return Reconcile(filtered, s.snapshot()), nil
}

// Clear replaces the persisted cart with an empty list. Call it only after
// the server has acknowledged an order; a failed order keeps the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.writeLines(ctx, nil)
}
